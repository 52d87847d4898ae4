package graph

import "fmt"

// DataType represents runtime type information for constant tensors.
type DataType int

// Supported element types for constant tensors.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8, Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// Wire-format element type codes (TensorProto.DataType) as declared on
// constant nodes by the import collaborator.
const (
	ProtoUndefined = 0
	ProtoFloat     = 1  // float32
	ProtoUint8     = 2  // uint8
	ProtoInt8      = 3  // int8
	ProtoUint16    = 4  // uint16
	ProtoInt16     = 5  // int16
	ProtoInt32     = 6  // int32
	ProtoInt64     = 7  // int64
	ProtoString    = 8  // string
	ProtoBool      = 9  // bool
	ProtoFloat16   = 10 // float16
	ProtoDouble    = 11 // float64
)

// protoToDataType is the fixed mapping from wire-format codes to the element
// types this engine works with. Codes absent from the table are types the
// engine has no use for (string, float16, ...).
var protoToDataType = map[int64]DataType{
	ProtoFloat:  Float32,
	ProtoDouble: Float64,
	ProtoInt32:  Int32,
	ProtoInt64:  Int64,
	ProtoUint8:  Uint8,
	ProtoBool:   Bool,
}

// DataTypeFromProto translates a declared wire-format type code into a
// DataType via the fixed mapping table.
func DataTypeFromProto(code int64) (DataType, error) {
	dt, ok := protoToDataType[code]
	if !ok {
		return 0, fmt.Errorf("no element type mapping for wire code %d", code)
	}
	return dt, nil
}

// ProtoCode returns the wire-format code for a DataType. It is the inverse
// of DataTypeFromProto for the supported types.
func (dt DataType) ProtoCode() int64 {
	switch dt {
	case Float32:
		return ProtoFloat
	case Float64:
		return ProtoDouble
	case Int32:
		return ProtoInt32
	case Int64:
		return ProtoInt64
	case Uint8:
		return ProtoUint8
	case Bool:
		return ProtoBool
	default:
		return ProtoUndefined
	}
}
