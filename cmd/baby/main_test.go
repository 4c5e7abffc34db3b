package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/baby/cpu"
	"github.com/ezrec/baby/io"
)

func TestPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	assert.NoError(predefine(asm, []string{"SIZE=4", "EMPTY="}))

	for _, define := range []string{"SIZE", "=4", ""} {
		err := predefine(asm, []string{define})
		assert.Equal(ErrDefine(define), err, define)
		assert.Contains(err.Error(), "NAME=VALUE")
	}
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "prog.asm")
	bin := filepath.Join(dir, "prog.bin")
	bad := filepath.Join(dir, "bad.bin")

	assert.NoError(os.WriteFile(src, []byte("VAR 0\nLDN 2\nSTP\nVAR -5\n"), 0o644))
	assert.NoError(cpu.AssembleFile(src, bin, false))

	out := &bytes.Buffer{}
	assert.NoError(disassemble(out, bin))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Equal(4, len(lines))
	assert.Contains(lines[1], "LDN 2")
	assert.Contains(lines[2], "STP")
	assert.True(strings.HasSuffix(lines[3], "; -5"))

	err := disassemble(out, filepath.Join(dir, "missing.bin"))
	assert.ErrorIs(err, cpu.ErrResource)
	assert.ErrorIs(err, os.ErrNotExist)

	assert.NoError(os.WriteFile(bad, []byte("0101\n"), 0o644))
	err = disassemble(out, bad)
	assert.ErrorIs(err, io.ErrFormat)
	assert.NotErrorIs(err, cpu.ErrResource)
}
