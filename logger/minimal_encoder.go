package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

var bufferPool = buffer.NewPool()

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  WARN  fctest  tool exited  tool=fc-cache exit_code=1"
//
// Fields attached with With() live in the embedded map encoder so they
// survive Clone and show up on every entry.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return &minimalEncoder{MapObjectEncoder: clone}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	final.AppendString(ent.Time.Format("15:04:05"))

	// Level: only shown when it is not INFO
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(ent.Level.CapitalString())
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(ent.LoggerName)
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	if kv := encodeFields(enc.Fields, fields); kv != "" {
		final.AppendString("  ")
		final.AppendString(kv)
	}

	final.AppendString("\n")
	return final, nil
}

// encodeFields renders context and entry fields as key=value pairs.
// Keys are sorted so identical entries produce identical lines.
func encodeFields(context map[string]interface{}, fields []zapcore.Field) string {
	all := zapcore.NewMapObjectEncoder()
	for k, v := range context {
		all.Fields[k] = v
	}
	for _, f := range fields {
		f.AddTo(all)
	}
	if len(all.Fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(all.Fields))
	for k := range all.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+formatValue(all.Fields[k]))
	}
	return strings.Join(parts, " ")
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " \t\n") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case []interface{}:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = formatValue(item)
		}
		return "[" + strings.Join(items, ",") + "]"
	default:
		return fmt.Sprintf("%v", val)
	}
}
