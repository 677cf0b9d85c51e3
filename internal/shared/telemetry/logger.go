package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const service = "cat-resume-api"

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	write("info", msg, fields)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	write("warn", msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	write("error", msg, fields)
}

func write(level, msg string, fields map[string]any) {
	entry := make(map[string]any, len(fields)+4)
	for k, v := range fields {
		switch k {
		case "ts", "level", "msg", "service":
			k = "field_" + k
		}
		entry[k] = fieldValue(v)
	}
	entry["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level
	entry["msg"] = msg
	entry["service"] = service

	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stdout, `{"ts":"%s","level":"error","msg":"logger marshal failed","err":%q}`+"\n", time.Now().UTC().Format(time.RFC3339Nano), err.Error())
		return
	}
	fmt.Fprintln(os.Stdout, string(data))
}

func fieldValue(v any) any {
	switch val := v.(type) {
	case error:
		return val.Error()
	case time.Duration:
		return val.String()
	default:
		return v
	}
}
