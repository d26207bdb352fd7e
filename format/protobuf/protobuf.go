// Package protobuf implements a binary format encoding documents as
// google.protobuf.Struct messages.
package protobuf

import (
	"flag"

	"github.com/netsampler/flowkey/format"
	"github.com/netsampler/flowkey/format/common"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProtobufDriver marshals documents as structpb.Struct.
type ProtobufDriver struct {
	fixedLen bool
}

// Prepare registers the driver flags.
func (d *ProtobufDriver) Prepare() error {
	flag.BoolVar(&d.fixedLen, "format.protobuf.fixedlen", false, "Prefix the protobuf with message length")
	return nil
}

func (d *ProtobufDriver) Init() error {
	return nil
}

// Format encodes the document of data.
func (d *ProtobufDriver) Format(data interface{}) ([]byte, []byte, error) {
	key, doc, ok := common.Document(data)
	if !ok {
		return key, nil, format.ErrNoSerializer
	}
	msg, err := structpb.NewStruct(doc)
	if err != nil {
		return key, nil, err
	}
	b, err := proto.Marshal(msg)
	if err != nil {
		return key, nil, err
	}
	if !d.fixedLen {
		return key, b, nil
	}
	buf := make([]byte, 0, protowire.SizeVarint(uint64(len(b)))+len(b))
	buf = protowire.AppendVarint(buf, uint64(len(b)))
	return key, append(buf, b...), nil
}

func init() {
	d := &ProtobufDriver{}
	format.RegisterFormatDriver("pb", d)
}
