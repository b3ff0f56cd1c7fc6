package types

// TypeConst identifies a built-in type constant, type function or
// proposition constructor. Every constant has a fixed kind signature;
// the kind checker verifies arity and argument kinds before it ever
// builds a TCon node.
type TypeConst int

const (
	// Value-type constructors.
	TCBit     TypeConst = iota // Bit
	TCInteger                  // Integer
	TCSeq                      // [n]a
	TCFun                      // a -> b

	// Numeric type functions.
	TFAdd
	TFSub
	TFMul
	TFDiv
	TFMod
	TFExp
	TFMin
	TFMax
	TFWidth
	TFLenFromThen
	TFLenFromThenTo

	// Proposition constructors.
	PCFin
	PCEqual
	PCGeq
	PCZero
	PCRing
	PCCmp
	PCSignedCmp
	PCAnd
)

var tcNames = map[TypeConst]string{
	TCBit:           "Bit",
	TCInteger:       "Integer",
	TCSeq:           "seq",
	TCFun:           "->",
	TFAdd:           "+",
	TFSub:           "-",
	TFMul:           "*",
	TFDiv:           "/",
	TFMod:           "%",
	TFExp:           "^^",
	TFMin:           "min",
	TFMax:           "max",
	TFWidth:         "width",
	TFLenFromThen:   "lengthFromThen",
	TFLenFromThenTo: "lengthFromThenTo",
	PCFin:           "fin",
	PCEqual:         "==",
	PCGeq:           ">=",
	PCZero:          "Zero",
	PCRing:          "Ring",
	PCCmp:           "Cmp",
	PCSignedCmp:     "SignedCmp",
	PCAnd:           "And",
}

func (tc TypeConst) String() string {
	if s, ok := tcNames[tc]; ok {
		return s
	}
	return "?"
}

// Signature returns the argument kinds and the result kind of a constant.
func (tc TypeConst) Signature() ([]Kind, Kind) {
	switch tc {
	case TCBit, TCInteger:
		return nil, KType
	case TCSeq:
		return []Kind{KNum, KType}, KType
	case TCFun:
		return []Kind{KType, KType}, KType
	case TFAdd, TFSub, TFMul, TFDiv, TFMod, TFExp, TFMin, TFMax:
		return []Kind{KNum, KNum}, KNum
	case TFWidth:
		return []Kind{KNum}, KNum
	case TFLenFromThen, TFLenFromThenTo:
		return []Kind{KNum, KNum, KNum}, KNum
	case PCFin:
		return []Kind{KNum}, KProp
	case PCEqual, PCGeq:
		return []Kind{KNum, KNum}, KProp
	case PCZero, PCRing, PCCmp, PCSignedCmp:
		return []Kind{KType}, KProp
	case PCAnd:
		return []Kind{KProp, KProp}, KProp
	}
	return nil, KType
}

// IsTypeFun reports whether the constant is a numeric type function, as
// opposed to a simple constructor. Type-function applications carry
// well-formedness side conditions that the solver turns into goals.
func (tc TypeConst) IsTypeFun() bool {
	switch tc {
	case TFAdd, TFSub, TFMul, TFDiv, TFMod, TFExp, TFMin, TFMax,
		TFWidth, TFLenFromThen, TFLenFromThenTo:
		return true
	}
	return false
}
