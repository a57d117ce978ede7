package amd64

type (
	Reg string
)

const (
	RAX Reg = "rax"
	RDI Reg = "rdi"
	RSI Reg = "rsi"
	RDX Reg = "rdx"
	RCX Reg = "rcx"
	R8  Reg = "r8"
	R9  Reg = "r9"
	RBP Reg = "rbp"
	RSP Reg = "rsp"
)

// ArgRegs are the System V registers for the first integer arguments, in order.
var ArgRegs = [...]Reg{RDI, RSI, RDX, RCX, R8, R9}

// Ret holds the return value.
const Ret = RAX

// StackAlign is the rsp alignment required at a call instruction.
const StackAlign = 16

func (r Reg) String() string { return string(r) }
