// Package opcode holds the closed enumeration of instruction types and the
// flat, opcode-indexed dispatch tables that drive the tokenizer and parser.
//
// The registry is immutable and built once at init; nothing here mutates
// after package initialization runs.
package opcode

// Kind is one of the ~90 named instruction types the decoder recognizes.
// Unrecognized numeric codes classify to Unknown.
type Kind int

const (
	Unknown Kind = -1

	Arithmetic Kind = 0
	NumericIf  Kind = 1
	Call       Kind = 2
	Sort       Kind = 3
	Mask       Kind = 4
	SetString  Kind = 5
	Empty      Kind = 6

	IfAllAll          Kind = 50
	IfNoAll           Kind = 51
	IfAnyAll          Kind = 52
	IfAllCurrentPath  Kind = 53
	IfNoCurrentPath   Kind = 54
	IfAnyCurrentPath  Kind = 55
	IfDate            Kind = 56
	DateDiffDays      Kind = 57
	DateDiffMonths    Kind = 58
	DateDiffYears     Kind = 59
	Sum               Kind = 60
	Abs               Kind = 84
	StringLength      Kind = 85
	StringConcat      Kind = 86
	SumCurrentPath    Kind = 87
	CntCategoryAvail  Kind = 89
	CntCategoryInst   Kind = 90
	RankCategoryAvail Kind = 93
	RankCategoryInst  Kind = 94
	IsDate            Kind = 95
	IsNumeric         Kind = 98
	IsAlpha           Kind = 99

	AssociateHrvToHrd Kind = 110
	FlagAllByUsage    Kind = 113

	GetCategoryItem         Kind = 120
	SetCategoryItem         Kind = 121
	GetRankedCategoryItem   Kind = 122
	SetRankedCategoryItem   Kind = 123
	GetCategoryItemAvail    Kind = 124
	SetCategoryItemAvail    Kind = 125
	DateAdd                 Kind = 126
	RankAllByUsageCondAsc   Kind = 118
	RankAllByUsageCondDes   Kind = 119

	MathExp   Kind = 127
	MathLog   Kind = 128
	MathLog10 Kind = 129
	MathExpE  Kind = 130
	MathRand  Kind = 131
	MathFact  Kind = 132
	MathSqrt  Kind = 133
	MathCeil  Kind = 134
	MathFloor Kind = 135
	MathEven  Kind = 136
	MathOdd   Kind = 137

	TrigCos   Kind = 138
	TrigCosh  Kind = 139
	TrigAcos  Kind = 140
	TrigAcosh Kind = 141
	TrigSin   Kind = 142
	TrigSinh  Kind = 143
	TrigAsin  Kind = 144
	TrigAsinh Kind = 145
	TrigTan   Kind = 146
	TrigTanh  Kind = 147
	TrigAtan  Kind = 148
	TrigAtanh Kind = 149
	TrigDeg   Kind = 150
	TrigRad   Kind = 151

	QueryDataSource        Kind = 200
	SetUnderwritingToFail  Kind = 254
)

var names = map[Kind]string{
	Unknown: "UNKNOWN",

	Arithmetic: "ARITHMETIC", NumericIf: "NUMERIC_IF", Call: "CALL", Sort: "SORT",
	Mask: "MASK", SetString: "SET_STRING", Empty: "EMPTY",

	IfAllAll: "IF_ALL_ALL", IfNoAll: "IF_NO_ALL", IfAnyAll: "IF_ANY_ALL",
	IfAllCurrentPath: "IF_ALL_CURRENT_PATH", IfNoCurrentPath: "IF_NO_CURRENT_PATH",
	IfAnyCurrentPath: "IF_ANY_CURRENT_PATH", IfDate: "IF_DATE",

	DateDiffDays: "DATE_DIFF_DAYS", DateDiffMonths: "DATE_DIFF_MONTHS", DateDiffYears: "DATE_DIFF_YEARS",
	Sum: "SUM", Abs: "ABS", StringLength: "STRING_LENGTH", StringConcat: "STRING_CONCAT",
	SumCurrentPath: "SUM_CURRENT_PATH", CntCategoryAvail: "CNT_CATEGORY_AVAILABLE",
	CntCategoryInst: "CNT_CATEGORY_INSTANCE",

	RankCategoryAvail: "RANK_CATEGORY_AVAILABLE", RankCategoryInst: "RANK_CATEGORY_INSTANCE",
	IsDate: "IS_DATE", IsNumeric: "IS_NUMERIC", IsAlpha: "IS_ALPHA",

	AssociateHrvToHrd: "ASSOCIATE_HRV_VALUE_TO_HRD_VALUE", FlagAllByUsage: "FLAG_ALL_BY_USAGE_SET",

	GetCategoryItem: "GET_CATEGORY_ITEM", SetCategoryItem: "SET_CATEGORY_ITEM",
	GetRankedCategoryItem: "GET_RANKED_CATEGORY_ITEM", SetRankedCategoryItem: "SET_RANKED_CATEGORY_ITEM",
	GetCategoryItemAvail: "GET_CATEGORY_ITEM_AVAILABLE", SetCategoryItemAvail: "SET_CATEGORY_ITEM_AVAILABLE",
	DateAdd: "DATE_ADD", RankAllByUsageCondAsc: "RANK_ALL_BY_USAGE_SET_COND_ASC",
	RankAllByUsageCondDes: "RANK_ALL_BY_USAGE_SET_COND_DES",

	MathExp: "POWER", MathLog: "LOG", MathLog10: "LOG10", MathExpE: "EXP", MathRand: "RAND",
	MathFact: "FACT", MathSqrt: "SQRT", MathCeil: "CEIL", MathFloor: "FLOOR", MathEven: "EVEN", MathOdd: "ODD",

	TrigCos: "COS", TrigCosh: "COSH", TrigAcos: "ACOS", TrigAcosh: "ACOSH",
	TrigSin: "SIN", TrigSinh: "SINH", TrigAsin: "ASIN", TrigAsinh: "ASINH",
	TrigTan: "TAN", TrigTanh: "TANH", TrigAtan: "ATAN", TrigAtanh: "ATANH",
	TrigDeg: "DEG", TrigRad: "RAD",

	QueryDataSource: "QUERY_DATA_SOURCE", SetUnderwritingToFail: "SET_UNDERWRITING_TO_FAIL",
}

// String returns the canonical opcode name, or "UNKNOWN" for any code the
// registry doesn't recognize.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Classify is a total function from a numeric opcode to a Kind. Codes
// outside the closed enumeration classify to Unknown; callers never need
// to handle an error here.
func Classify(code int) Kind {
	k := Kind(code)
	if _, ok := names[k]; ok {
		return k
	}
	return Unknown
}

// TokenizerStrategy names which of the lexer's seven splitting strategies
// handles a given opcode. The lexer package owns the actual functions;
// this keeps the registry free of a lexer import.
type TokenizerStrategy int

const (
	StrategyDefault TokenizerStrategy = iota
	StrategyPipe
	StrategyPlus
	StrategyPipeFirst
	StrategyTildePipe
	StrategyRankUsage
	StrategyScan
)

var tokenizerStrategies = map[Kind]TokenizerStrategy{
	Arithmetic: StrategyScan,
	Call:       StrategyScan,
	Mask:       StrategyPipeFirst,

	IsAlpha: StrategyTildePipe,
	IsDate:  StrategyTildePipe,
	// IsNumeric is dispatched via StrategyTildePipe too; see below.
	Sum:            StrategyPlus,
	SumCurrentPath: StrategyPlus,

	StringConcat: StrategyScan,
	SetString:    StrategyScan,

	DateDiffDays:   StrategyPipe,
	DateDiffMonths: StrategyPipe,
	DateDiffYears:  StrategyPipe,
	DateAdd:        StrategyPipe,

	GetCategoryItem:       StrategyPipe,
	SetCategoryItem:       StrategyPipe,
	GetRankedCategoryItem: StrategyPipe,
	SetRankedCategoryItem: StrategyPipe,
	GetCategoryItemAvail:  StrategyPipe,
	SetCategoryItemAvail:  StrategyPipe,

	CntCategoryAvail:  StrategyDefault,
	CntCategoryInst:   StrategyDefault,
	RankCategoryAvail: StrategyPipe,
	RankCategoryInst:  StrategyPipe,

	FlagAllByUsage:        StrategyRankUsage,
	RankAllByUsageCondAsc: StrategyRankUsage,
	RankAllByUsageCondDes: StrategyRankUsage,

	MathExp: StrategyPipe, MathLog: StrategyPipe, MathLog10: StrategyPipe, MathExpE: StrategyPipe,
	MathRand: StrategyDefault, MathFact: StrategyDefault,
	MathSqrt: StrategyPipe, MathCeil: StrategyPipe, MathFloor: StrategyPipe,
	MathEven: StrategyDefault, MathOdd: StrategyDefault,

	TrigCos: StrategyPipe, TrigCosh: StrategyPipe, TrigAcos: StrategyPipe, TrigAcosh: StrategyPipe,
	TrigSin: StrategyPipe, TrigSinh: StrategyPipe, TrigAsin: StrategyPipe, TrigAsinh: StrategyPipe,
	TrigTan: StrategyPipe, TrigTanh: StrategyPipe, TrigAtan: StrategyPipe, TrigAtanh: StrategyPipe,
	TrigDeg: StrategyPipe, TrigRad: StrategyPipe,

	AssociateHrvToHrd: StrategyDefault,
	QueryDataSource:   StrategyPipe,
}

func init() {
	tokenizerStrategies[IsNumeric] = StrategyTildePipe
	for _, k := range []Kind{NumericIf, IfAllAll, IfNoAll, IfAnyAll, IfDate, IfAllCurrentPath, IfNoCurrentPath, IfAnyCurrentPath} {
		// These are tokenized through the multi-IF token scanner (tokenize_all
		// in the original), not any of the seven named strategies; the lexer
		// special-cases ins_type membership in this set directly.
		tokenizerStrategies[k] = StrategyScan
	}
}

// TokenizerStrategyFor returns the lexing strategy for an opcode, defaulting
// to StrategyDefault (emit the whole body as one WORD) for any opcode with
// no explicit entry — this matches the Python dispatch_map.get(..., default).
func TokenizerStrategyFor(k Kind) TokenizerStrategy {
	if s, ok := tokenizerStrategies[k]; ok {
		return s
	}
	return StrategyDefault
}

// IsMultiIfCandidate reports whether this opcode is one of the conditional
// IF family whose body may contain '#', '^' or '+' top-level markers.
func IsMultiIfCandidate(k Kind) bool {
	switch k {
	case NumericIf, IfAllAll, IfNoAll, IfAnyAll, IfDate, IfAllCurrentPath, IfNoCurrentPath, IfAnyCurrentPath:
		return true
	default:
		return false
	}
}

// ParserStrategy names which of the parser package's builder functions
// handles a given opcode, mirroring TokenizerStrategy. The IF family
// (IsMultiIfCandidate) is dispatched separately, on body content rather
// than opcode alone, so it has no entry here.
type ParserStrategy int

const (
	ParseRaw ParserStrategy = iota
	ParseArithmetic
	ParseCall
	ParseSort
	ParseMask
	ParseSetString
	ParseNoop
	ParseStringConcat
	ParseDateDiff
	ParseDateAdd
	ParseFunction
	ParseDataSource
	ParseRankFlag
	ParseTypeCheck
)

var parserStrategies = map[Kind]ParserStrategy{
	Arithmetic: ParseArithmetic,
	Call:       ParseCall,
	Sort:       ParseSort,
	Mask:       ParseMask,
	SetString:  ParseSetString,

	Empty:                 ParseNoop,
	SetUnderwritingToFail: ParseNoop,

	StringConcat: ParseStringConcat,

	DateDiffDays:   ParseDateDiff,
	DateDiffMonths: ParseDateDiff,
	DateDiffYears:  ParseDateDiff,

	DateAdd: ParseDateAdd,

	MathExp: ParseFunction, MathLog: ParseFunction, MathLog10: ParseFunction, MathExpE: ParseFunction,
	MathSqrt: ParseFunction, TrigCos: ParseFunction, TrigSin: ParseFunction, TrigTan: ParseFunction,
	TrigCosh: ParseFunction, TrigSinh: ParseFunction, TrigTanh: ParseFunction,
	MathCeil: ParseFunction, MathFloor: ParseFunction,

	QueryDataSource: ParseDataSource,

	RankCategoryInst:  ParseRankFlag,
	RankCategoryAvail: ParseRankFlag,

	IsDate:    ParseTypeCheck,
	IsNumeric: ParseTypeCheck,
	IsAlpha:   ParseTypeCheck,
}

// ParserStrategyFor returns the builder-function family for an opcode,
// defaulting to ParseRaw (degrade to a plain Raw node) for any opcode
// with no explicit entry, including the IF family — callers must check
// IsMultiIfCandidate first.
func ParserStrategyFor(k Kind) ParserStrategy {
	if s, ok := parserStrategies[k]; ok {
		return s
	}
	return ParseRaw
}
