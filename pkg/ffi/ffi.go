// Package main provides C FFI exports for the pmrt converter.
//
// Build with:
//
//	CGO_ENABLED=1 go build -buildmode=c-shared -o libpmrt.so ./pkg/ffi/
//
// All inputs/outputs are C strings. Configuration and stats are
// JSON-serialized. The PmrtResult type provides both data and error fields.
// Callers must free results with pmrt_result_free.
package main

// #include "pmrt.h"
import "C"
import (
	"encoding/json"
	"unsafe"

	"github.com/jmylchreest/pmrt/internal/version"
	"github.com/jmylchreest/pmrt/pkg/pmrt"
)

// === Converter ===

//export pmrt_convert
func pmrt_convert(html *C.char, configJSON *C.char) C.PmrtResult {
	cfg, err := parseConfig(goString(configJSON))
	if err != nil {
		return makeError(err.Error())
	}
	out, err := pmrt.New(cfg).Convert(C.GoString(html))
	if err != nil {
		return makeError(err.Error())
	}
	return makeResult(out)
}

//export pmrt_convert_json
func pmrt_convert_json(html *C.char, configJSON *C.char) C.PmrtResult {
	cfg, err := parseConfig(goString(configJSON))
	if err != nil {
		return makeError(err.Error())
	}
	result, err := pmrt.New(cfg).ConvertWithStats(C.GoString(html))
	if err != nil {
		return makeError(err.Error())
	}
	data, err := json.Marshal(result)
	if err != nil {
		return makeError(err.Error())
	}
	return makeResult(string(data))
}

//export pmrt_version
func pmrt_version() C.PmrtResult {
	return makeResult(version.String())
}

// === Memory Management ===

//export pmrt_result_free
func pmrt_result_free(result C.PmrtResult) {
	if result.data != nil {
		C.free(unsafe.Pointer(result.data))
	}
	if result.error != nil {
		C.free(unsafe.Pointer(result.error))
	}
}

// helpers

func goString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

func makeResult(data string) C.PmrtResult {
	cData := C.CString(data)
	return C.PmrtResult{
		data:  cData,
		len:   C.int(len(data)),
		error: nil,
	}
}

func makeError(msg string) C.PmrtResult {
	cErr := C.CString(msg)
	return C.PmrtResult{
		data:  nil,
		len:   0,
		error: cErr,
	}
}

// main is required for c-shared build mode but should not be called.
func main() {}
