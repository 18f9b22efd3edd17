package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/valyala/fastjson"
	"go.uber.org/multierr"

	"github.com/lagerlog/lager/core"
	"github.com/lagerlog/lager/formatter"
	"github.com/lagerlog/lager/handler"
	"github.com/lagerlog/lager/logger"
)

// Build constructs a Logger from a JSON document. Every violation is
// a construction error; nothing is deferred to the first log call.
//
// Document shape:
//
//	{
//	  "name": "app",
//	  "template": "{time} {verbosity} {name}: {message}",
//	  "location": "UTC",
//	  "context": {"env": "prod"},
//	  "handlers": [
//	    {"type": "console", "target": "stderr", "min_verbosity": "warning"},
//	    {"type": "file", "path": "/var/log/app.log", "min_verbosity": "debug"},
//	    {"type": "tcp", "host": "collector", "port": 6514},
//	    {"type": "syslog", "address": "localhost:514", "facility": 1}
//	  ]
//	}
func Build(doc []byte) (*logger.Logger, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(doc)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	b := logger.NewBuilder()

	if name := v.GetStringBytes("name"); name != nil {
		b.WithName(string(name))
	}

	if tmpl := v.GetStringBytes("template"); tmpl != nil {
		t, err := formatter.NewTemplate(string(tmpl))
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		b.WithTemplate(t)
	}

	if locName := v.GetStringBytes("location"); locName != nil {
		loc, err := time.LoadLocation(string(locName))
		if err != nil {
			return nil, fmt.Errorf("config: location: %w", err)
		}
		b.WithLocation(loc)
	}

	if ctx := v.GetObject("context"); ctx != nil {
		var visitErr error
		ctx.Visit(func(key []byte, val *fastjson.Value) {
			if visitErr != nil {
				return
			}
			s, err := contextValue(val)
			if err != nil {
				visitErr = fmt.Errorf("config: context key %q: %w", key, err)
				return
			}
			b.WithContext(logger.String(string(key), s))
		})
		if visitErr != nil {
			return nil, visitErr
		}
	}

	hvals := v.GetArray("handlers")
	if len(hvals) == 0 {
		return nil, fmt.Errorf("config: at least one handler is required")
	}

	handlers := make([]handler.Handler, 0, len(hvals))
	for i, hv := range hvals {
		h, err := buildHandler(hv)
		if err != nil {
			// Release the sinks already acquired before reporting
			for _, built := range handlers {
				err = multierr.Append(err, built.Close())
			}
			return nil, fmt.Errorf("config: handler %d: %w", i, err)
		}
		handlers = append(handlers, h)
	}
	b.WithHandlers(handlers...)

	return b.Build(), nil
}

// BuildFile constructs a Logger from a JSON file.
func BuildFile(path string) (*logger.Logger, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Build(doc)
}

// contextValue renders a JSON scalar as a static context string.
func contextValue(v *fastjson.Value) (string, error) {
	switch v.Type() {
	case fastjson.TypeString:
		s, _ := v.StringBytes()
		return string(s), nil
	case fastjson.TypeNumber, fastjson.TypeTrue, fastjson.TypeFalse:
		return v.String(), nil
	default:
		return "", fmt.Errorf("unsupported value type %s", v.Type())
	}
}

// buildHandler constructs one handler from its JSON object.
func buildHandler(v *fastjson.Value) (handler.Handler, error) {
	kind := string(v.GetStringBytes("type"))

	min := core.Debug
	if s := v.GetStringBytes("min_verbosity"); s != nil {
		parsed, err := core.ParseVerbosity(string(s))
		if err != nil {
			return nil, err
		}
		min = parsed
	}

	var fmtr formatter.Formatter
	if tmpl := v.GetStringBytes("template"); tmpl != nil {
		t, err := formatter.NewTemplate(string(tmpl))
		if err != nil {
			return nil, err
		}
		fmtr = t
	}

	switch kind {
	case "console":
		target := "stdout"
		if s := v.GetStringBytes("target"); s != nil {
			target = string(s)
		}
		cfg := handler.ConsoleConfig{MinVerbosity: min, Formatter: fmtr}
		switch target {
		case "stdout":
			cfg.Writer = os.Stdout
		case "stderr":
			cfg.Writer = os.Stderr
		default:
			return nil, fmt.Errorf("unknown console target %q", target)
		}
		return handler.NewConsoleHandler(cfg), nil

	case "file":
		return handler.NewFileHandler(handler.FileConfig{
			Path:         string(v.GetStringBytes("path")),
			MinVerbosity: min,
			Formatter:    fmtr,
			SyncWrites:   v.GetBool("sync_writes"),
		})

	case "tcp", "udp":
		host := string(v.GetStringBytes("host"))
		port := v.GetInt("port")
		if host == "" {
			return nil, fmt.Errorf("%s handler: host is required", kind)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("%s handler: port %d out of range", kind, port)
		}
		return handler.NewNetworkHandler(handler.NetworkConfig{
			Network:      kind,
			Address:      net.JoinHostPort(host, strconv.Itoa(port)),
			MinVerbosity: min,
			Formatter:    fmtr,
		})

	case "unix":
		return handler.NewNetworkHandler(handler.NetworkConfig{
			Network:      "unix",
			Address:      string(v.GetStringBytes("path")),
			MinVerbosity: min,
			Formatter:    fmtr,
		})

	case "syslog":
		return handler.NewSyslogHandler(handler.SyslogConfig{
			Address:      string(v.GetStringBytes("address")),
			Facility:     v.GetInt("facility"),
			MinVerbosity: min,
			Formatter:    fmtr,
		})

	case "":
		return nil, fmt.Errorf("handler type is required")
	default:
		return nil, fmt.Errorf("unknown handler type %q", kind)
	}
}
