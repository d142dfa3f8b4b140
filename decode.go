package cfgdoc

import (
	"sync"

	"github.com/cfgdoc/cfgdoc/codec"
	"github.com/cfgdoc/cfgdoc/codec/envcodec"
	"github.com/cfgdoc/cfgdoc/codec/jsoncodec"
	"github.com/cfgdoc/cfgdoc/codec/xmlcodec"
	"github.com/cfgdoc/cfgdoc/codec/yamlcodec"
	"github.com/cfgdoc/cfgdoc/format"
	"github.com/cfgdoc/cfgdoc/ir"
)

var defaultRegistry = sync.OnceValue(func() *codec.Registry {
	reg := codec.NewRegistry()
	reg.Register(format.JSONFormat.String(), func() codec.Codec { return jsoncodec.New() })
	reg.Register(format.XMLFormat.String(), func() codec.Codec { return xmlcodec.New() })
	reg.Register(format.ConfigFormat.String(), func() codec.Codec { return xmlcodec.NewConfig() })
	reg.Register(format.EnvFormat.String(), func() codec.Codec { return envcodec.New() })
	reg.Register(format.YAMLFormat.String(), func() codec.Codec { return yamlcodec.New() })
	return reg
})

// DefaultRegistry returns the shared registry with the built-in codecs
// registered. Callers may register more formats on it.
func DefaultRegistry() *codec.Registry {
	return defaultRegistry()
}

// Decode parses content using the codec resolved from filename,
// sniffing content when the extension alone is ambiguous.
func Decode(filename string, content []byte) (*ir.Node, error) {
	c, err := DefaultRegistry().Resolve(filename, content)
	if err != nil {
		return nil, err
	}
	return c.Parse(content)
}

// Encode serializes node in the given format.
func Encode(f format.Format, node *ir.Node) ([]byte, error) {
	c, err := DefaultRegistry().ForFormat(f)
	if err != nil {
		return nil, err
	}
	return c.Serialize(node)
}
