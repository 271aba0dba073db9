package codec

import (
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
	"github.com/minio/simdjson-go"
	segmentio "github.com/segmentio/encoding/json"
	"github.com/valyala/fastjson"

	"jsonbench/internal/document"
)

const (
	NameStdlib    = "encoding/json"
	NameSonic     = "sonic"
	NameGoJSON    = "go-json"
	NameJsoniter  = "jsoniter"
	NameSegmentio = "segmentio"
	NameFastJSON  = "fastjson"
	NameSimdJSON  = "simdjson"
	NameReference = "jsonbench/document"
)

func Stdlib() Adapter {
	return marshalCodec{name: NameStdlib, unmarshal: json.Unmarshal, marshal: json.Marshal}
}

func Sonic() Adapter {
	return marshalCodec{name: NameSonic, unmarshal: sonic.Unmarshal, marshal: sonic.Marshal}
}

func GoJSON() Adapter {
	return marshalCodec{name: NameGoJSON, unmarshal: gojson.Unmarshal, marshal: gojson.Marshal}
}

func Jsoniter() Adapter {
	ji := jsoniter.ConfigCompatibleWithStandardLibrary
	return marshalCodec{name: NameJsoniter, unmarshal: ji.Unmarshal, marshal: ji.Marshal}
}

func Segmentio() Adapter {
	return marshalCodec{name: NameSegmentio, unmarshal: segmentio.Unmarshal, marshal: segmentio.Marshal}
}

// Reference is the order-preserving codec the corpus is written with. It is
// not benchmarked; generate checks every corpus file against it.
func Reference() Adapter {
	return marshalCodec{
		name:      NameReference,
		unmarshal: func(data []byte, v any) error {
			doc, err := document.Unmarshal(data)
			if err != nil {
				return err
			}
			*(v.(*any)) = doc
			return nil
		},
		marshal: document.Marshal,
	}
}

// fastJSON parses into a *fastjson.Value tree. A fresh parser per call keeps
// earlier values valid while later parses run.
type fastJSON struct{}

func FastJSON() Adapter { return fastJSON{} }

func (fastJSON) Name() string     { return NameFastJSON }
func (fastJSON) Available() error { return nil }

func (fastJSON) Parse(data []byte) (any, error) {
	return fastjson.ParseBytes(data)
}

func (fastJSON) Serialize(v any) ([]byte, error) {
	val, ok := v.(*fastjson.Value)
	if !ok {
		return nil, fmt.Errorf("fastjson: cannot serialize %T", v)
	}
	return val.MarshalTo(nil), nil
}

// simdJSON parses into a simdjson tape. It needs AVX2 and CLMUL and reports
// itself unavailable elsewhere.
type simdJSON struct{}

func SimdJSON() Adapter { return simdJSON{} }

func (simdJSON) Name() string { return NameSimdJSON }

func (simdJSON) Available() error {
	if !simdjson.SupportedCPU() {
		return unavailableErr(NameSimdJSON, "CPU lacks AVX2/CLMUL")
	}
	return nil
}

func (simdJSON) Parse(data []byte) (any, error) {
	return simdjson.Parse(data, nil)
}

func (simdJSON) Serialize(v any) ([]byte, error) {
	pj, ok := v.(*simdjson.ParsedJson)
	if !ok {
		return nil, fmt.Errorf("simdjson: cannot serialize %T", v)
	}
	iter := pj.Iter()
	return iter.MarshalJSON()
}

// All returns every built-in adapter in reporting order, baseline first.
func All() []Adapter {
	return []Adapter{
		Stdlib(),
		Sonic(),
		GoJSON(),
		Jsoniter(),
		Segmentio(),
		FastJSON(),
		SimdJSON(),
	}
}
