package formatter_test

import (
	"fmt"
	"strings"
	"time"

	"github.com/lagerlog/lager/core"
	"github.com/lagerlog/lager/formatter"
)

func ExampleNewTemplate() {
	tmpl, _ := formatter.NewTemplate("{time} {verbosity} {name}: {message}")

	r := &core.Record{
		Time:      time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Verbosity: core.Info,
		Name:      "app",
		Message:   "hello world",
	}

	out, _ := tmpl.Format(r)
	fmt.Println(string(out))
	// Output:
	// 2026-01-15T12:00:00Z INFO app: hello world
}

func ExampleNewJSONFormatter() {
	f := formatter.NewJSONFormatter(formatter.Config{})

	r := &core.Record{
		Time:      time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Verbosity: core.Info,
		Message:   "request handled",
		Context: []core.Field{
			{Key: "status", Int64: 200, Type: core.Int64Type},
		},
	}

	out, _ := f.Format(r)
	fmt.Println(strings.Contains(string(out), `"verbosity":"INFO"`))
	fmt.Println(strings.Contains(string(out), `"status":200`))
	// Output:
	// true
	// true
}
