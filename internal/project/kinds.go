package project

import "strconv"

// BlockKind is the concrete kind of a block.
type BlockKind string

const (
	BlockOB         BlockKind = "OB"
	BlockFB         BlockKind = "FB"
	BlockFC         BlockKind = "FC"
	BlockGlobalDB   BlockKind = "GlobalDB"
	BlockInstanceDB BlockKind = "InstanceDB"
	BlockArrayDB    BlockKind = "ArrayDB"
)

// Valid reports whether k is a known block kind.
func (k BlockKind) Valid() bool {
	switch k {
	case BlockOB, BlockFB, BlockFC, BlockGlobalDB, BlockInstanceDB, BlockArrayDB:
		return true
	}
	return false
}

// IsDataBlock reports whether k is one of the data-block kinds.
func (k BlockKind) IsDataBlock() bool {
	return k == BlockGlobalDB || k == BlockInstanceDB || k == BlockArrayDB
}

// Tag returns the label used in rendered trees. All data-block kinds
// collapse to "DB".
func (k BlockKind) Tag() string {
	if k.IsDataBlock() {
		return "DB"
	}
	return string(k)
}

// BlockTag renders b's tag, number and language as in "OB1, LAD", or
// "DB3" when the language is empty. Trees and tool listings share it.
func BlockTag(b Block) string {
	tag := b.BlockKind().Tag() + strconv.Itoa(b.Number())
	if b.Language() != "" {
		tag += ", " + b.Language()
	}
	return tag
}

// TypeKind is the concrete kind of a user type.
type TypeKind string

const (
	TypeStruct TypeKind = "PlcStruct"
	TypeEnum   TypeKind = "PlcEnum"
)

// Tag returns the label used in rendered trees. Struct-like types render
// as "UDT".
func (k TypeKind) Tag() string {
	if k == TypeStruct {
		return "UDT"
	}
	return string(k)
}
