package main

import (
	"os"
	"reflect"
	"strings"

	musgen "github.com/mus-format/musgen-go/mus"
	genops "github.com/mus-format/musgen-go/options/generate"
	structops "github.com/mus-format/musgen-go/options/struct"
	typeops "github.com/mus-format/musgen-go/options/type"
	"github.com/poiesic/compass/core"
)

// musgen writes the MUS serializers for the journal records to
// core/records_mus.gen.go. Run it through `go generate ./core`.
func main() {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	// If we're in the core subpackage, cd up to project root
	if strings.HasSuffix(cwd, "core") {
		if err := os.Chdir(".."); err != nil {
			panic(err)
		}
	}
	g, err := musgen.NewCodeGenerator(
		genops.WithPkgPath("github.com/poiesic/compass/core"),
	)
	if err != nil {
		panic(err)
	}

	g.AddDefinedType(reflect.TypeFor[core.ID]())

	// Unix micro timestamps for InsertedAt and UpdatedAt
	micros := typeops.WithTimeUnit(typeops.Micro)
	err = g.AddStruct(reflect.TypeFor[core.RepairRecord](),
		structops.WithField(), // Id
		structops.WithField(), // Source
		structops.WithField(), // Stage
		structops.WithField(), // Degraded
		structops.WithField(), // ParseError
		structops.WithField(), // Raw
		structops.WithField(), // Repaired
		structops.WithField(), // Attempts
		structops.WithField(micros),
		structops.WithField(micros))
	if err != nil {
		panic(err)
	}

	bs, err := g.Generate()
	if err != nil {
		panic(err)
	}

	err = os.WriteFile("./core/records_mus.gen.go", bs, 0644)
	if err != nil {
		panic(err)
	}
}
