package benchmarks

// GetMicrobenchmarks returns the standard set of workloads. Each one
// exercises a specific group of instructions.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticSequential(),
		dependencyChain(),
		shiftChain(),
		sumLoop(),
		memorySequential(),
		functionCalls(),
		branchTaken(),
		compareCount(),
		matrixMultiply2x2(),
	}
}

// GetCoreBenchmarks returns a minimal set for quick validation: a loop,
// a matrix multiply and branch-heavy code.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		sumLoop(),
		matrixMultiply2x2(),
		branchTaken(),
	}
}

func arithmeticSequential() Benchmark {
	var body []uint32
	for round := 0; round < 4; round++ {
		for r := regT0; r <= regT4; r++ {
			body = append(body, EncodeADDIU(r, r, 1))
		}
	}

	return Benchmark{
		Name:           "arithmetic_sequential",
		Description:    "20 independent addiu operations over 5 registers",
		Program:        BuildProgram(body, Exit()),
		ResultReg:      regT4,
		ExpectedResult: 4,
	}
}

func dependencyChain() Benchmark {
	body := make([]uint32, 20)
	for i := range body {
		body[i] = EncodeADDIU(regT0, regT0, 1)
	}

	return Benchmark{
		Name:           "dependency_chain",
		Description:    "20 dependent addiu operations on one register",
		Program:        BuildProgram(body, Exit()),
		ResultReg:      regT0,
		ExpectedResult: 20,
	}
}

func shiftChain() Benchmark {
	body := []uint32{EncodeADDIU(regT0, regZero, 1)}
	for i := 0; i < 10; i++ {
		body = append(body, EncodeSLL(regT0, regT0, 1))
	}

	return Benchmark{
		Name:           "shift_chain",
		Description:    "10 dependent sll operations",
		Program:        BuildProgram(body, Exit()),
		ResultReg:      regT0,
		ExpectedResult: 1024,
	}
}

func sumLoop() Benchmark {
	return Benchmark{
		Name:        "sum_loop",
		Description: "Sum 10..1 with a bne-controlled loop",
		Program: BuildProgram([]uint32{
			EncodeADDIU(regT0, regZero, 10),
			EncodeADDIU(regS0, regZero, 0),
			// loop:
			EncodeADD(regS0, regS0, regT0),
			EncodeADDIU(regT0, regT0, -1),
			EncodeBNE(regT0, regZero, -3),
		}, Exit()),
		ResultReg:      regS0,
		ExpectedResult: 55,
	}
}

func memorySequential() Benchmark {
	return Benchmark{
		Name:        "memory_sequential",
		Description: "Prefix-sum 8 data words in place with lw/sw",
		Program: BuildProgram([]uint32{
			EncodeLUI(regT1, uint16(DataBase>>16)),
			EncodeORI(regT1, regT1, uint16(DataBase)),
			EncodeADDIU(regT0, regZero, 8),
			// loop:
			EncodeLW(regT2, regT1, 0),
			EncodeADDU(regS0, regS0, regT2),
			EncodeSW(regS0, regT1, 0),
			EncodeADDIU(regT1, regT1, 4),
			EncodeADDIU(regT0, regT0, -1),
			EncodeBNE(regT0, regZero, -6),
		}, Exit()),
		Data:           []int32{1, 2, 3, 4, 5, 6, 7, 8},
		ResultReg:      regS0,
		ExpectedResult: 36,
	}
}

func functionCalls() Benchmark {
	// inc lives right after the exit sequence.
	inc := TextBase + 8*4

	return Benchmark{
		Name:        "function_calls",
		Description: "5 jal/jr round trips to a leaf function",
		Program: BuildProgram([]uint32{
			EncodeADDIU(regA0, regZero, 0),
			EncodeJAL(inc),
			EncodeJAL(inc),
			EncodeJAL(inc),
			EncodeJAL(inc),
			EncodeJAL(inc),
		}, Exit(), []uint32{
			// inc:
			EncodeADDIU(regA0, regA0, 2),
			EncodeJR(regRA),
		}),
		ResultReg:      regA0,
		ExpectedResult: 10,
	}
}

func branchTaken() Benchmark {
	var body []uint32
	for i := 0; i < 5; i++ {
		body = append(body,
			EncodeBEQ(regZero, regZero, 1),
			EncodeADDIU(regT0, regT0, 100), // skipped
			EncodeADDIU(regS0, regS0, 1),
		)
	}
	body = append(body, EncodeADD(regS0, regS0, regT0))

	return Benchmark{
		Name:           "branch_taken",
		Description:    "5 always-taken beq branches over poisoned instructions",
		Program:        BuildProgram(body, Exit()),
		ResultReg:      regS0,
		ExpectedResult: 5,
	}
}

func compareCount() Benchmark {
	return Benchmark{
		Name:        "compare_count",
		Description: "Count data words below a threshold with slt",
		Program: BuildProgram([]uint32{
			EncodeADDIU(regT1, regZero, int16(DataBase)),
			EncodeADDIU(regT0, regZero, 6),
			EncodeADDIU(regT3, regZero, 4),
			// loop:
			EncodeLW(regT2, regT1, 0),
			EncodeSLT(regT4, regT2, regT3),
			EncodeADD(regV1, regV1, regT4),
			EncodeADDIU(regT1, regT1, 4),
			EncodeADDI(regT0, regT0, -1),
			EncodeBNE(regT0, regZero, -6),
		}, Exit()),
		Data:           []int32{5, -3, 9, 0, 12, -7},
		ResultReg:      regV1,
		ExpectedResult: 3,
	}
}

func matrixMultiply2x2() Benchmark {
	// A at DataBase, B at +16, C at +32; A and B are kept in $s0-$s7.
	program := []uint32{EncodeADDIU(regT9, regZero, int16(DataBase))}
	for i := uint8(0); i < 8; i++ {
		program = append(program, EncodeLW(regS0+i, regT9, int16(i)*4))
	}

	a := func(row, col uint8) uint8 { return regS0 + row*2 + col }
	b := func(row, col uint8) uint8 { return regS0 + 4 + row*2 + col }

	for row := uint8(0); row < 2; row++ {
		for col := uint8(0); col < 2; col++ {
			program = append(program,
				EncodeMUL(regT0, a(row, 0), b(0, col)),
				EncodeMUL(regT1, a(row, 1), b(1, col)),
				EncodeADD(regT0, regT0, regT1),
				EncodeSW(regT0, regT9, int16(32+(row*2+col)*4)),
			)
		}
	}

	return Benchmark{
		Name:           "matrix_multiply_2x2",
		Description:    "2x2 integer matrix multiply with mul, result stored to memory",
		Program:        BuildProgram(program, Exit()),
		Data:           []int32{1, 2, 3, 4, 5, 6, 7, 8, 0, 0, 0, 0},
		ResultReg:      regT0,
		ExpectedResult: 50,
	}
}
