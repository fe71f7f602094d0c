// Serializers for the journal records in MUS format. `go generate ./core`
// rewrites this file from cmd/musgen.

package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// IDMUS serializes IDs in MUS format.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

// timeMUS stores times as Unix microseconds in UTC, with 0 for the zero time.
var timeMUS = microTimeMUS{}

type microTimeMUS struct{}

func (microTimeMUS) micros(v time.Time) int64 {
	if v.IsZero() {
		return 0
	}
	return v.UnixMicro()
}

func (s microTimeMUS) Marshal(v time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(s.micros(v), bs)
}

func (microTimeMUS) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	us, n, err := varint.Int64.Unmarshal(bs)
	if err != nil || us == 0 {
		return time.Time{}, n, err
	}
	return time.UnixMicro(us).UTC(), n, nil
}

func (s microTimeMUS) Size(v time.Time) (size int) {
	return varint.Int64.Size(s.micros(v))
}

// RepairRecordMUS serializes RepairRecords in MUS format.
// Field order is part of the stored format.
var RepairRecordMUS = repairRecordMUS{}

type repairRecordMUS struct{}

func (repairRecordMUS) Marshal(v RepairRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Source, bs[n:])
	n += ord.String.Marshal(v.Stage, bs[n:])
	n += ord.Bool.Marshal(v.Degraded, bs[n:])
	n += ord.String.Marshal(v.ParseError, bs[n:])
	n += ord.String.Marshal(v.Raw, bs[n:])
	n += ord.String.Marshal(v.Repaired, bs[n:])
	n += varint.Int.Marshal(v.Attempts, bs[n:])
	n += timeMUS.Marshal(v.InsertedAt, bs[n:])
	return n + timeMUS.Marshal(v.UpdatedAt, bs[n:])
}

func (repairRecordMUS) Unmarshal(bs []byte) (v RepairRecord, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	fields := []*string{&v.Source, &v.Stage}
	for _, dst := range fields {
		*dst, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	v.Degraded, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	fields = []*string{&v.ParseError, &v.Raw, &v.Repaired}
	for _, dst := range fields {
		*dst, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	v.Attempts, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (repairRecordMUS) Size(v RepairRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Source)
	size += ord.String.Size(v.Stage)
	size += ord.Bool.Size(v.Degraded)
	size += ord.String.Size(v.ParseError)
	size += ord.String.Size(v.Raw)
	size += ord.String.Size(v.Repaired)
	size += varint.Int.Size(v.Attempts)
	size += timeMUS.Size(v.InsertedAt)
	return size + timeMUS.Size(v.UpdatedAt)
}
