// Package fixture bundles small sample block-dictionary corpora for
// tests, storing them zstd-compressed in memory the same way the
// teacher's compr package wraps klauspost/compress for on-disk ion
// blocks — compressed at load time here rather than read from a
// pre-built binary blob, since these fixtures are small Go string
// literals rather than an embedded corpus file.
package fixture

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var raw = map[string]string{
	"single-block": `{
		"block1": {"opcode":"motion_movesteps","next":null,"parent":null,
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":true}
	}`,
	"loop-with-body": `{
		"block1": {"opcode":"control_repeat","next":null,"parent":null,
			"inputs":{"SUBSTACK":[2,"block2"]},"fields":{"TIMES":["10"]},
			"shadow":false,"topLevel":true},
		"block2": {"opcode":"motion_movesteps","next":"block3","parent":"block1",
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":false},
		"block3": {"opcode":"motion_turnright","next":null,"parent":"block2",
			"inputs":{"DEGREES":[1,[4,"15"]]},"fields":{},"shadow":false,"topLevel":false}
	}`,
	"two-top-level-sequences": `{
		"block1": {"opcode":"event_whenflagclicked","next":null,"parent":null,
			"inputs":{},"fields":{},"shadow":false,"topLevel":true},
		"block2": {"opcode":"motion_movesteps","next":null,"parent":null,
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":true}
	}`,
}

var (
	encOnce sync.Once
	encoder *zstd.Encoder
	decoder *zstd.Decoder

	cacheMu sync.Mutex
	cache   = map[string][]byte{}
)

func codecs() {
	encOnce.Do(func() {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			panic(err)
		}
		dec, err := zstd.NewReader(nil)
		if err != nil {
			panic(err)
		}
		encoder = enc
		decoder = dec
	})
}

// Names lists the bundled fixture names.
func Names() []string {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	return names
}

// Load returns the decompressed JSON bytes of the named fixture,
// suitable for loader.Load.
func Load(name string) ([]byte, error) {
	codecs()

	cacheMu.Lock()
	compressed, ok := cache[name]
	if !ok {
		src, known := raw[name]
		if !known {
			cacheMu.Unlock()
			return nil, fmt.Errorf("fixture: no bundled corpus named %q", name)
		}
		compressed = encoder.EncodeAll([]byte(src), nil)
		cache[name] = compressed
	}
	cacheMu.Unlock()

	return decoder.DecodeAll(compressed, nil)
}
