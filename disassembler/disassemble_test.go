package disassembler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Urethramancer/i8086/cpu"
)

var movTests = []struct {
	name string
	code []byte
	want string
}{
	// register to/from register
	{"reg_word", []byte{0b1000_1001, 0b1101_1110}, "mov si, bx"},
	{"reg_byte", []byte{0b1000_1000, 0b1100_0110}, "mov dh, al"},
	{"reg_cx_bx", []byte{0x89, 0xd9}, "mov cx, bx"},
	{"reg_ch_ah", []byte{0x88, 0xe5}, "mov ch, ah"},
	{"reg_d_set", []byte{0x8b, 0xc3}, "mov ax, bx"},

	// memory, no displacement
	{"mem_bx_si", []byte{0b1000_1010, 0b0000_0000}, "mov al, [bx + si]"},
	{"mem_bp_di", []byte{0x8b, 0x1b}, "mov bx, [bp + di]"},
	{"mem_store_bx_di", []byte{0x89, 0x09}, "mov [bx + di], cx"},
	{"mem_store_bp_si", []byte{0x88, 0x0a}, "mov [bp + si], cl"},
	{"mem_direct", []byte{0x8b, 0x2e, 0x05, 0x00}, "mov bp, [5]"},
	{"mem_direct_large", []byte{0x8b, 0x1e, 0x82, 0x0d}, "mov bx, [3458]"},

	// 8-bit displacement
	{"disp8_positive", []byte{0b1000_1010, 0b0110_0000, 0b0000_0100}, "mov ah, [bx + si + 4]"},
	{"disp8_negative", []byte{0b1000_1011, 0b0101_0111, 0b1110_0000}, "mov dx, [bx - 32]"},
	{"disp8_negative_pair", []byte{0x8b, 0x41, 0xdb}, "mov ax, [bx + di - 37]"},
	{"disp8_zero_bp", []byte{0x8b, 0x56, 0x00}, "mov dx, [bp]"},
	{"disp8_zero_store_bp", []byte{0x88, 0x6e, 0x00}, "mov [bp], ch"},

	// 16-bit displacement
	{"disp16_positive", []byte{0x8a, 0x80, 0x87, 0x13}, "mov al, [bx + si + 4999]"},
	{"disp16_negative", []byte{0x89, 0x8c, 0xd4, 0xfe}, "mov [si - 300], cx"},
	{"disp16_zero", []byte{0x8b, 0x87, 0x00, 0x00}, "mov ax, [bx]"},
	{"disp16_min", []byte{0x8b, 0x87, 0x00, 0x80}, "mov ax, [bx - 32768]"},

	// immediate to register
	{"imm_reg_byte", []byte{0b1011_0001, 0b0000_1100}, "mov cl, 12"},
	{"imm_reg_byte_negative", []byte{0b1011_0101, 0b1111_0100}, "mov ch, 244"},
	{"imm_reg_word_small", []byte{0b1011_1001, 0b0000_1100, 0x00}, "mov cx, 12"},
	{"imm_reg_word_negative_small", []byte{0b1011_1001, 0b1111_0100, 0b1111_1111}, "mov cx, 65524"},
	{"imm_reg_word", []byte{0b1011_1010, 0b0110_1100, 0b0000_1111}, "mov dx, 3948"},
	{"imm_reg_word_negative", []byte{0b1011_1001, 0b1001_0100, 0b1111_0000}, "mov cx, 61588"},

	// immediate to register/memory
	{"imm_mem_byte", []byte{0b1100_0110, 0b0000_0011, 0b0000_0111}, "mov [bp + di], byte 7"},
	{"imm_mem_word_disp16", []byte{0xc7, 0x85, 0x85, 0x03, 0x5b, 0x01}, "mov [di + 901], word 347"},
	{"imm_mem_direct", []byte{0xc7, 0x06, 0x10, 0x00, 0x01, 0x00}, "mov [16], word 1"},
	{"imm_mem_disp8", []byte{0xc6, 0x46, 0xfe, 0xff}, "mov [bp - 2], byte 255"},
	{"imm_mem_reg_field_ignored", []byte{0xc6, 0x3f, 0x07}, "mov [bx], byte 7"},
	{"imm_rm_register", []byte{0xc6, 0xc0, 0x05}, "mov al, 5"},
	{"imm_rm_register_word", []byte{0xc7, 0xc3, 0x34, 0x12}, "mov bx, 4660"},

	// memory to/from accumulator
	{"acc_load", []byte{0b1010_0001, 0b1111_1011, 0b0000_1001}, "mov ax, [2555]"},
	{"acc_load_small", []byte{0xa1, 0x10, 0x00}, "mov ax, [16]"},
	{"acc_load_byte_form", []byte{0xa0, 0x10, 0x00}, "mov ax, [16]"},
	{"acc_store", []byte{0xa3, 0xfa, 0x09}, "mov [2554], ax"},
	{"acc_store_small", []byte{0xa3, 0x0f, 0x00}, "mov [15], ax"},
}

func TestDecodeInstruction(t *testing.T) {
	for _, tt := range movTests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := DecodeInstruction(tt.code, 0)
			if err != nil {
				t.Fatalf("% x: unexpected error: %v", tt.code, err)
			}
			if got := inst.String(); got != tt.want {
				t.Errorf("% x: got %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

// Each encoding must consume exactly its own bytes and nothing that follows.
func TestConsumedBytes(t *testing.T) {
	for _, tt := range movTests {
		t.Run(tt.name, func(t *testing.T) {
			code := append(append([]byte{}, tt.code...), 0x90, 0x90)
			c := &cursor{code: code}
			if _, err := decodeNext(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.pos != len(tt.code) {
				t.Errorf("% x: consumed %d bytes, want %d", tt.code, c.pos, len(tt.code))
			}
		})
	}
}

func TestTruncatedInstruction(t *testing.T) {
	for _, tt := range movTests {
		for n := 1; n < len(tt.code); n++ {
			_, err := DecodeInstruction(tt.code[:n], 0)
			if !errors.Is(err, ErrStreamExhausted) {
				t.Errorf("%s: prefix of %d bytes: got %v, want ErrStreamExhausted", tt.name, n, err)
				continue
			}
			var se *StreamExhaustedError
			if !errors.As(err, &se) {
				t.Fatalf("%s: error is not a *StreamExhaustedError: %T", tt.name, err)
			}
			if se.Offset != 0 || se.Have != n || se.Need <= se.Have {
				t.Errorf("%s: prefix of %d bytes: unexpected error context %+v", tt.name, n, se)
			}
		}
	}
}

func TestDisassembleListing(t *testing.T) {
	code := []byte{
		0x89, 0xde,
		0x8a, 0x00,
		0x8a, 0x60, 0x04,
		0xb1, 0x0c,
		0xc6, 0x03, 0x07,
		0xa1, 0xfb, 0x09,
		0x8b, 0x57, 0xe0,
	}
	want := `bits 16

mov si, bx
mov al, [bx + si]
mov ah, [bx + si + 4]
mov cl, 12
mov [bp + di], byte 7
mov ax, [2555]
mov dx, [bx - 32]
`
	got, err := Disassemble(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("listing mismatch (-want +got):\n%s", diff)
	}

	again, _ := Disassemble(code)
	if again != got {
		t.Errorf("decoding the same input twice gave different listings")
	}
}

func TestDisassembleEmpty(t *testing.T) {
	got, err := Disassemble(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "bits 16\n\n" {
		t.Errorf("got %q", got)
	}
}

func TestDecodeAddresses(t *testing.T) {
	code := []byte{0x89, 0xde, 0xc7, 0x85, 0x85, 0x03, 0x5b, 0x01, 0xa3, 0x0f, 0x00}
	insts, err := Decode(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Instruction{
		{Address: 0, Bytes: code[0:2], Variant: cpu.RegisterToFromRegisterOrMemory, Mnemonic: "mov", Operands: []string{"si", "bx"}},
		{Address: 2, Bytes: code[2:8], Variant: cpu.ImmediateToRegisterOrMemory, Mnemonic: "mov", Operands: []string{"[di + 901]", "word 347"}},
		{Address: 8, Bytes: code[8:11], Variant: cpu.MemoryToFromAccumulator, Mnemonic: "mov", Operands: []string{"[15]", "ax"}},
	}
	if diff := cmp.Diff(want, insts); diff != "" {
		t.Errorf("instructions mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsupportedOpcodeStops(t *testing.T) {
	code := []byte{0x89, 0xde, 0x90, 0xb1, 0x0c}
	got, err := Disassemble(code)
	if !errors.Is(err, ErrUnsupportedOpcode) {
		t.Fatalf("got %v, want ErrUnsupportedOpcode", err)
	}
	var ue *UnsupportedOpcodeError
	if !errors.As(err, &ue) {
		t.Fatalf("error is not an *UnsupportedOpcodeError: %T", err)
	}
	if ue.Offset != 2 || ue.Opcode != 0x90 {
		t.Errorf("got offset %d opcode 0x%02x, want offset 2 opcode 0x90", ue.Offset, ue.Opcode)
	}
	if want := "bits 16\n\nmov si, bx\n"; got != want {
		t.Errorf("partial listing: got %q, want %q", got, want)
	}
}

func TestTruncatedStreamKeepsPartialListing(t *testing.T) {
	code := []byte{0xb1, 0x0c, 0xc7, 0x85, 0x85}
	got, err := Disassemble(code)
	var se *StreamExhaustedError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want *StreamExhaustedError", err)
	}
	if se.Offset != 2 || se.Have != 3 {
		t.Errorf("unexpected error context %+v", se)
	}
	if want := "bits 16\n\nmov cl, 12\n"; got != want {
		t.Errorf("partial listing: got %q, want %q", got, want)
	}
}

func TestSkipUnsupported(t *testing.T) {
	d := New(Options{SkipUnsupported: true})
	got, err := d.Disassemble([]byte{0x90, 0xb1, 0x0c, 0x8e, 0xd8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "bits 16\n\ndb 0x90\nmov cl, 12\ndb 0x8e\ndb 0xd8\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("listing mismatch (-want +got):\n%s", diff)
	}
}

func TestSkipUnsupportedStillStopsOnTruncation(t *testing.T) {
	d := New(Options{SkipUnsupported: true})
	_, err := d.Disassemble([]byte{0x90, 0xb9, 0x01})
	if !errors.Is(err, ErrStreamExhausted) {
		t.Errorf("got %v, want ErrStreamExhausted", err)
	}
}

func TestDispatch(t *testing.T) {
	for i := 0; i < 256; i++ {
		b := byte(i)
		var want cpu.Variant
		switch {
		case b == 0xc6 || b == 0xc7:
			want = cpu.ImmediateToRegisterOrMemory
		case b >= 0x88 && b <= 0x8b:
			want = cpu.RegisterToFromRegisterOrMemory
		case b >= 0xa0 && b <= 0xa3:
			want = cpu.MemoryToFromAccumulator
		case b >= 0xb0 && b <= 0xbf:
			want = cpu.ImmediateToRegister
		}
		got, ok := Dispatch(b)
		if ok != (want != cpu.VariantNone) || got != want {
			t.Errorf("Dispatch(0x%02x) = %v, %v; want %v", b, got, ok, want)
		}
	}
}

func TestDisplacementSign(t *testing.T) {
	for i := 0; i < 256; i++ {
		d := int8(i)
		var want string
		switch {
		case d == 0:
			want = "mov ax, [bx]"
		case d > 0:
			want = fmt.Sprintf("mov ax, [bx + %d]", d)
		default:
			want = fmt.Sprintf("mov ax, [bx - %d]", -int(d))
		}
		inst, err := DecodeInstruction([]byte{0x8b, 0x47, byte(i)}, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := inst.String(); got != want {
			t.Errorf("disp8 0x%02x: got %q, want %q", i, got, want)
		}
	}

	for _, v := range []int16{1, -1, 127, -128, 128, -129, 32767, -32768} {
		want := fmt.Sprintf("mov ax, [bx + %d]", v)
		if v < 0 {
			want = fmt.Sprintf("mov ax, [bx - %d]", -int(v))
		}
		code := cpu.PutWord([]byte{0x8b, 0x87}, uint16(v))
		inst, err := DecodeInstruction(code, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := inst.String(); got != want {
			t.Errorf("disp16 %d: got %q, want %q", v, got, want)
		}
	}
}

func TestDecodeInstructionAtOffset(t *testing.T) {
	code := []byte{0xb1, 0x0c, 0x8b, 0x57, 0xe0}
	inst, err := DecodeInstruction(code, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.Address != 2 || inst.Size() != 3 || inst.String() != "mov dx, [bx - 32]" {
		t.Errorf("got %+v", inst)
	}
}

// Every addressing byte under every register/memory opcode consumes the
// length its mod, r/m and w fields imply.
func TestConsumedBytesExhaustive(t *testing.T) {
	tail := []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66}
	for _, op := range []byte{0x88, 0x89, 0x8a, 0x8b, 0xc6, 0xc7} {
		size := cpu.DecodeOpcode(op).Size
		for b := 0; b < 256; b++ {
			var f cpu.Fields
			f.DecodeModRM(byte(b))
			want := 2 + cpu.DispBytes(f.Mode, f.RM)
			if op&0xfe == cpu.OPMOVImmToRM {
				want += size.Bytes()
			}

			code := append([]byte{op, byte(b)}, tail...)
			c := &cursor{code: code}
			if _, err := decodeNext(c); err != nil {
				t.Fatalf("% x: unexpected error: %v", code[:2], err)
			}
			if c.pos != want {
				t.Errorf("0x%02x 0x%02x: consumed %d bytes, want %d", op, b, c.pos, want)
			}
		}
	}

	for op := 0xb0; op <= 0xbf; op++ {
		size, _ := cpu.ImmediateRegister(byte(op))
		c := &cursor{code: append([]byte{byte(op)}, tail...)}
		if _, err := decodeNext(c); err != nil {
			t.Fatalf("0x%02x: unexpected error: %v", op, err)
		}
		if c.pos != 1+size.Bytes() {
			t.Errorf("0x%02x: consumed %d bytes, want %d", op, c.pos, 1+size.Bytes())
		}
	}

	for op := 0xa0; op <= 0xa3; op++ {
		c := &cursor{code: append([]byte{byte(op)}, tail...)}
		if _, err := decodeNext(c); err != nil {
			t.Fatalf("0x%02x: unexpected error: %v", op, err)
		}
		if c.pos != 3 {
			t.Errorf("0x%02x: consumed %d bytes, want 3", op, c.pos)
		}
	}
}

func TestDecodeInstructionNegativeOffset(t *testing.T) {
	_, err := DecodeInstruction([]byte{0xb1, 0x0c}, -1)
	var se *StreamExhaustedError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want *StreamExhaustedError", err)
	}
	if se.Offset != -1 || se.Have != 0 {
		t.Errorf("unexpected error context %+v", se)
	}

	_, err = DecodeInstruction([]byte{0xb1, 0x0c}, 5)
	if !errors.As(err, &se) || se.Have != 0 {
		t.Errorf("offset past the end: got %v", err)
	}
}

// Decoded records keep their bytes when the input is changed afterwards.
func TestInstructionBytesDetached(t *testing.T) {
	code := []byte{0xb1, 0x0c, 0x89, 0xde}
	insts, err := Decode(code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	code[1] = 0xff
	code[3] = 0x00
	if diff := cmp.Diff([]byte{0xb1, 0x0c}, insts[0].Bytes); diff != "" {
		t.Errorf("first instruction bytes changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]byte{0x89, 0xde}, insts[1].Bytes); diff != "" {
		t.Errorf("second instruction bytes changed (-want +got):\n%s", diff)
	}
}
