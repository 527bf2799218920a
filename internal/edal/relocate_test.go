// internal/edal/relocate_test.go
package edal

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populated(t *testing.T) *Chain {
	t.Helper()
	c := splitCooling(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, c.SetU16(AttrCoolingFanSpeed, TypeCooling, i, uint16(1000+i)))
		require.NoError(t, c.SetStr(AttrSerialNumber, TypeCooling, i, "FAN-SN"))
	}
	require.NoError(t, c.SetBool(AttrFaulted, TypeCooling, 2, true))
	require.NoError(t, c.SetGenerationCount(7))
	require.NoError(t, c.IncrementOverallStateChange())
	require.NoError(t, c.SetComponentOverallStatus(TypeCooling, OverallFailed))
	return c
}

func TestRelocation_CopyRepairDecode(t *testing.T) {
	src := populated(t)
	want, err := src.Encode()
	require.NoError(t, err)

	buf := make([]byte, src.ImageSize())
	n, err := src.CopyTo(buf)
	require.NoError(t, err)
	assert.Equal(t, 2*256, n)
	assert.Equal(t, uint32(256), binary.LittleEndian.Uint32(buf[offNext:]))
	assert.Zero(t, binary.LittleEndian.Uint32(buf[256+offNext:]))

	// stale relation from a previous location
	binary.LittleEndian.PutUint32(buf[offNext:], 0xDEAD0000)
	require.NoError(t, RepairImage(buf))
	assert.Equal(t, uint32(256), binary.LittleEndian.Uint32(buf[offNext:]))

	dst, err := Decode(buf, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, 2, dst.Len())

	got, err := dst.Encode()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(want, got))

	for i := 0; i < 3; i++ {
		v, err := dst.GetU16(AttrCoolingFanSpeed, TypeCooling, i)
		require.NoError(t, err)
		assert.Equal(t, uint16(1000+i), v)
	}
	faulted, err := dst.GetBool(AttrFaulted, TypeCooling, 2)
	require.NoError(t, err)
	assert.True(t, faulted)

	n2, err := dst.SpecificComponentCount(TypeCooling)
	require.NoError(t, err)
	assert.Equal(t, 3, n2)

	g, err := dst.GenerationCount()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), g)
}

func TestCopyTo_InsufficientBuffer(t *testing.T) {
	src := populated(t)

	buf := make([]byte, 256+100)
	n, err := src.CopyTo(buf)
	assert.ErrorIs(t, err, ErrInsufficientResource)
	assert.Equal(t, 256, n)
	assert.Zero(t, binary.LittleEndian.Uint32(buf[offNext:]), "copied prefix must be terminated")

	part, err := Decode(buf[:n], WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, 1, part.Len())

	cnt, err := part.SpecificComponentCount(TypeCooling)
	require.NoError(t, err)
	assert.Equal(t, 2, cnt)

	_, err = src.CopyTo(make([]byte, 10))
	assert.ErrorIs(t, err, ErrInsufficientResource)

	_, err = src.CopyTo(nil)
	assert.ErrorIs(t, err, ErrNullReturn)
}

func TestDecode_KeepsComponentCorruption(t *testing.T) {
	src := populated(t)
	corruptComponent(t, src, TypeCooling, 1)

	img, err := src.Encode()
	require.NoError(t, err)

	dst, err := Decode(img, WithLogger(quietLogger()))
	require.NoError(t, err)

	_, err = dst.GetU16(AttrCoolingFanSpeed, TypeCooling, 1)
	assert.ErrorIs(t, err, ErrInvalidComponentCanary)

	_, err = dst.GetU16(AttrCoolingFanSpeed, TypeCooling, 0)
	assert.NoError(t, err)
}

func TestDecode_Rejects(t *testing.T) {
	src := populated(t)
	img, err := src.Encode()
	require.NoError(t, err)

	bad := append([]byte(nil), img...)
	bad[256+offCanary] ^= 0xFF
	_, err = Decode(bad, WithLogger(quietLogger()))
	assert.ErrorIs(t, err, ErrInvalidBlockCanary)

	assert.ErrorIs(t, RepairImage(bad), ErrInvalidBlockCanary)

	_, err = Decode(img[:300], WithLogger(quietLogger()))
	assert.ErrorIs(t, err, ErrInsufficientResource)

	_, err = Decode(nil)
	assert.ErrorIs(t, err, ErrNullBlock)

	cut := append([]byte(nil), img...)
	binary.LittleEndian.PutUint32(cut[256+offNext:], 0)
	binary.LittleEndian.PutUint32(cut[offNext:], 0)
	c, err := Decode(cut, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestBackup(t *testing.T) {
	src := populated(t)
	dst, err := src.NewBackup()
	require.NoError(t, err)

	require.NoError(t, src.Backup(dst))

	g, err := dst.GenerationCount()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), g)

	for i := 0; i < 3; i++ {
		v, err := dst.GetU16(AttrCoolingFanSpeed, TypeCooling, i)
		require.NoError(t, err)
		assert.Equal(t, uint16(1000+i), v)
	}
	st, err := dst.ComponentOverallStatus(TypeCooling)
	require.NoError(t, err)
	assert.Equal(t, OverallFailed, st)

	for blk := 0; blk < 2; blk++ {
		sf, _ := src.FreeSpace(blk)
		df, _ := dst.FreeSpace(blk)
		assert.Equal(t, sf, df)
	}

	// header counters other than the generation are not copied
	n, err := dst.OverallStateChangeCount()
	require.NoError(t, err)
	assert.Zero(t, n)

	// the backup is independent of the source
	require.NoError(t, src.SetU16(AttrCoolingFanSpeed, TypeCooling, 0, 1))
	v, err := dst.GetU16(AttrCoolingFanSpeed, TypeCooling, 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(1000), v)
}

func TestBackup_ShapeMismatch(t *testing.T) {
	src := populated(t)

	other := newChain(t, EnclosureViper, 512, 4)
	assert.ErrorIs(t, src.Backup(other), ErrSizeMismatch)

	short := newChain(t, EnclosureViper, 256, 4)
	assert.ErrorIs(t, src.Backup(short), ErrInsufficientResource)

	assert.ErrorIs(t, src.Backup(nil), ErrNullBlock)
}

func TestClone(t *testing.T) {
	src := populated(t)
	cp := src.Clone()

	require.NoError(t, cp.SetU16(AttrCoolingFanSpeed, TypeCooling, 2, 5))
	v, err := src.GetU16(AttrCoolingFanSpeed, TypeCooling, 2)
	require.NoError(t, err)
	assert.Equal(t, uint16(1002), v)
}

func TestDump(t *testing.T) {
	src := populated(t)
	corruptComponent(t, src, TypeCooling, 0)

	var out bytes.Buffer
	require.NoError(t, src.Dump(&out))
	s := out.String()
	assert.Contains(t, s, "enclosure=viper")
	assert.Contains(t, s, "Cooling Component: first=2 count=1")
	assert.Contains(t, s, `SerialNumber="FAN-SN"`)
	assert.Contains(t, s, "[0] edal: invalid component canary")
}
