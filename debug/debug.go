package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Codec bool
	Diff  bool
	Patch bool
	Span  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Codec = boolEnv("CFGDOC_DEBUG_CODEC")
	d.Diff = boolEnv("CFGDOC_DEBUG_DIFF")
	d.Patch = boolEnv("CFGDOC_DEBUG_PATCH")
	d.Span = boolEnv("CFGDOC_DEBUG_SPAN")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Codec() bool {
	return d.Codec
}
func Diff() bool {
	return d.Diff
}
func Patch() bool {
	return d.Patch
}
func Span() bool {
	return d.Span
}
