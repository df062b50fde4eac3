package main

// #include "pmrt.h"
import "C"
import (
	"fmt"
	"sync"

	"github.com/jmylchreest/pmrt/pkg/pmrt"
)

// handleManager keeps converters created through pmrt_converter_new so that
// callers converting many documents validate their configuration once.
var handleManager = &converterHandles{
	converters: make(map[C.int]*pmrt.Converter),
}

type converterHandles struct {
	mu         sync.RWMutex
	converters map[C.int]*pmrt.Converter
	nextID     C.int
}

func (h *converterHandles) add(c *pmrt.Converter) C.int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	h.converters[h.nextID] = c
	return h.nextID
}

func (h *converterHandles) get(id C.int) (*pmrt.Converter, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.converters[id]
	return c, ok
}

func (h *converterHandles) remove(id C.int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.converters, id)
}

// === Converter handles ===

//export pmrt_converter_new
func pmrt_converter_new(configJSON *C.char) C.int {
	cfg, err := parseConfig(goString(configJSON))
	if err != nil {
		return -1
	}
	return handleManager.add(pmrt.New(cfg))
}

//export pmrt_converter_convert
func pmrt_converter_convert(handle C.int, html *C.char) C.PmrtResult {
	c, ok := handleManager.get(handle)
	if !ok {
		return makeError(fmt.Sprintf("invalid converter handle: %d", handle))
	}
	out, err := c.Convert(C.GoString(html))
	if err != nil {
		return makeError(err.Error())
	}
	return makeResult(out)
}

//export pmrt_converter_free
func pmrt_converter_free(handle C.int) {
	handleManager.remove(handle)
}
