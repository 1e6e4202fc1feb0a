// file: pkg/fatdisk/disk_test.go

package fatdisk

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testBlockSize = 4096
	testDiskSize  = 1024 * 1024 * 64
	testMaxFiles  = 1024
)

func newTestDisk(t *testing.T) *Disk {
	t.Helper()
	path := filepath.Join(t.TempDir(), "testdisk.img")
	d, err := CreateWithGeometry(path, testBlockSize, testDiskSize, testMaxFiles)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func randomData(t *testing.T, n int) []byte {
	t.Helper()
	data := make([]byte, n)
	_, err := rand.Read(data)
	require.NoError(t, err)
	return data
}

func TestCreateAndReadSmallFile(t *testing.T) {
	r := require.New(t)
	d := newTestDisk(t)

	r.NoError(d.WriteFile("test.txt", []byte("Test content")))

	got, err := d.ReadFile("test.txt")
	r.NoError(err)
	r.Equal([]byte("Test content"), got)
}

func TestCreateDuplicateOverwritesContent(t *testing.T) {
	r := require.New(t)
	d := newTestDisk(t)

	r.NoError(d.WriteFile("file.txt", []byte("Old content")))
	r.NoError(d.WriteFile("file.txt", []byte("New content")))

	got, err := d.ReadFile("file.txt")
	r.NoError(err)
	r.Equal([]byte("New content"), got)
}

func TestReadNonexistentFile(t *testing.T) {
	r := require.New(t)
	d := newTestDisk(t)

	_, err := d.ReadFile("nonexistent.txt")
	r.ErrorIs(err, ErrFileNotFound)
}

func TestDeleteRemovesEntry(t *testing.T) {
	r := require.New(t)
	d := newTestDisk(t)

	r.NoError(d.WriteFile("to_delete.txt", make([]byte, 10)))
	r.NoError(d.DeleteFile("to_delete.txt"))

	_, err := d.ReadFile("to_delete.txt")
	r.ErrorIs(err, ErrFileNotFound)

	r.ErrorIs(d.DeleteFile("to_delete.txt"), ErrFileNotFound)
}

func TestCreateAndDeleteInLoop(t *testing.T) {
	r := require.New(t)
	d := newTestDisk(t)

	for i := 0; i < 50; i++ {
		name := fmt.Sprintf("temp_file_%d.txt", i)
		data := []byte(fmt.Sprintf("Temporary content %d", i))

		r.NoError(d.WriteFile(name, data))
		got, err := d.ReadFile(name)
		r.NoError(err)
		r.Equal(data, got)

		r.NoError(d.DeleteFile(name))
		_, err = d.ReadFile(name)
		r.ErrorIs(err, ErrFileNotFound)
	}
}

func TestFilesWithDifferentSizes(t *testing.T) {
	r := require.New(t)
	d := newTestDisk(t)

	small := randomData(t, testBlockSize/2)
	medium := randomData(t, testBlockSize*2)
	large := randomData(t, testBlockSize*50)

	r.NoError(d.WriteFile("small_file.txt", small))
	r.NoError(d.WriteFile("medium_file.txt", medium))
	r.NoError(d.WriteFile("large_file.txt", large))

	for name, want := range map[string][]byte{
		"small_file.txt":  small,
		"medium_file.txt": medium,
		"large_file.txt":  large,
	} {
		got, err := d.ReadFile(name)
		r.NoError(err)
		r.Equal(want, got)
	}
}

func TestEmptyFileLifecycle(t *testing.T) {
	r := require.New(t)
	d := newTestDisk(t)

	r.NoError(d.CreateFile("e.txt"))

	got, err := d.ReadFile("e.txt")
	r.NoError(err)
	r.Empty(got)

	r.NoError(d.AppendFile("e.txt", []byte("hi")))
	got, err = d.ReadFile("e.txt")
	r.NoError(err)
	r.Equal([]byte("hi"), got)
}

func TestWriteFileWithEmptyData(t *testing.T) {
	r := require.New(t)
	d := newTestDisk(t)

	free := d.Stats().FreeBlocks
	r.NoError(d.WriteFile("empty.bin", nil))

	got, err := d.ReadFile("empty.bin")
	r.NoError(err)
	r.Empty(got)
	r.Equal(free, d.Stats().FreeBlocks)
}

func TestAppendToFile(t *testing.T) {
	r := require.New(t)
	d := newTestDisk(t)

	r.NoError(d.WriteFile("append.txt", []byte("Initial content")))
	r.NoError(d.AppendFile("append.txt", []byte(" Appended content")))

	got, err := d.ReadFile("append.txt")
	r.NoError(err)
	r.Equal([]byte("Initial content Appended content"), got)
}

func TestAppendMultipleTimes(t *testing.T) {
	r := require.New(t)
	d := newTestDisk(t)

	r.NoError(d.WriteFile("multi_append.txt", []byte("First part")))
	r.NoError(d.AppendFile("multi_append.txt", []byte(" Second part")))
	r.NoError(d.AppendFile("multi_append.txt", []byte(" Third part")))

	got, err := d.ReadFile("multi_append.txt")
	r.NoError(err)
	r.Equal([]byte("First part Second part Third part"), got)
}

func TestAppendLargerThanBlockSize(t *testing.T) {
	r := require.New(t)
	d := newTestDisk(t)

	initial := []byte("Initial ")
	appended := randomData(t, testBlockSize*3)

	r.NoError(d.WriteFile("large_append.txt", initial))
	r.NoError(d.AppendFile("large_append.txt", appended))

	got, err := d.ReadFile("large_append.txt")
	r.NoError(err)
	r.Len(got, len(initial)+len(appended))
	r.Equal(initial, got[:len(initial)])
	r.True(bytes.Equal(appended, got[len(initial):]))
}

func TestAppendToBlockAlignedFile(t *testing.T) {
	r := require.New(t)
	d := newTestDisk(t)

	first := randomData(t, testBlockSize)
	second := randomData(t, testBlockSize/2)

	r.NoError(d.WriteFile("aligned.bin", first))
	r.NoError(d.AppendFile("aligned.bin", second))

	got, err := d.ReadFile("aligned.bin")
	r.NoError(err)
	r.Equal(first, got[:testBlockSize])
	r.Equal(second, got[testBlockSize:])
}

func TestAppendEmptyPayloadIsNoop(t *testing.T) {
	r := require.New(t)
	d := newTestDisk(t)

	r.NoError(d.CreateFile("still_empty.txt"))
	r.NoError(d.AppendFile("still_empty.txt", nil))

	got, err := d.ReadFile("still_empty.txt")
	r.NoError(err)
	r.Empty(got)

	r.ErrorIs(d.AppendFile("missing.txt", []byte("x")), ErrFileNotFound)
}

func TestFileNameValidation(t *testing.T) {
	r := require.New(t)
	d := newTestDisk(t)

	r.ErrorIs(d.CreateFile(""), ErrInvalidFileName)
	r.ErrorIs(d.CreateFile("   "), ErrInvalidFileName)
	r.ErrorIs(d.WriteFile(strings.Repeat("a", 25), []byte("x")), ErrInvalidFileName)

	exact := strings.Repeat("a", 24)
	r.NoError(d.WriteFile(exact, []byte("fits")))
	got, err := d.ReadFile(exact)
	r.NoError(err)
	r.Equal([]byte("fits"), got)
}

func TestUnicodeFileName(t *testing.T) {
	r := require.New(t)
	d := newTestDisk(t)

	r.NoError(d.WriteFile("测试文件.txt", []byte("Unicode content")))

	got, err := d.ReadFile("测试文件.txt")
	r.NoError(err)
	r.Equal([]byte("Unicode content"), got)

	// 3 bytes per rune: nine runes break the 24-byte limit
	r.ErrorIs(d.CreateFile(strings.Repeat("测", 9)), ErrInvalidFileName)
}

func TestDirectoryFull(t *testing.T) {
	r := require.New(t)
	path := filepath.Join(t.TempDir(), "tiny.img")
	d, err := CreateWithGeometry(path, 1024, 1024*1024, 32)
	r.NoError(err)
	defer d.Close()

	for i := 0; i < 32; i++ {
		r.NoError(d.WriteFile(fmt.Sprintf("file_%d.txt", i), []byte("data")))
	}
	r.ErrorIs(d.WriteFile("extra.txt", []byte("extra_data")), ErrDirectoryFull)

	// deleting frees a slot for the next create
	r.NoError(d.DeleteFile("file_0.txt"))
	r.NoError(d.WriteFile("extra.txt", []byte("extra_data")))
}

func TestInsufficientSpace(t *testing.T) {
	r := require.New(t)
	path := filepath.Join(t.TempDir(), "small.img")
	diskSize := 64 * 1024
	d, err := CreateWithGeometry(path, 1024, diskSize, 32)
	r.NoError(err)
	defer d.Close()

	r.ErrorIs(d.WriteFile("huge.bin", make([]byte, diskSize+1)), ErrInsufficientSpace)
}

func TestDeletedBlocksAreReused(t *testing.T) {
	r := require.New(t)
	path := filepath.Join(t.TempDir(), "reuse.img")
	diskSize := 64 * 1024
	d, err := CreateWithGeometry(path, 1024, diskSize, 32)
	r.NoError(err)
	defer d.Close()

	big := randomData(t, diskSize)
	r.NoError(d.WriteFile("big.bin", big))
	r.NoError(d.DeleteFile("big.bin"))

	updated := randomData(t, diskSize)
	r.NoError(d.WriteFile("reused.bin", updated))

	got, err := d.ReadFile("reused.bin")
	r.NoError(err)
	r.Equal(updated, got)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	r := require.New(t)
	path := filepath.Join(t.TempDir(), "persist.img")

	d, err := CreateWithGeometry(path, testBlockSize, testDiskSize, testMaxFiles)
	r.NoError(err)

	want := make(map[string][]byte)
	for i := 0; i < 50; i++ {
		name := fmt.Sprintf("temp_file_%d.txt", i)
		data := []byte(fmt.Sprintf("Temporary content %d", i))
		r.NoError(d.WriteFile(name, data))
		want[name] = data
	}
	big := randomData(t, testBlockSize*5+123)
	r.NoError(d.WriteFile("big.bin", big))
	want["big.bin"] = big
	r.NoError(d.Close())

	loaded, err := LoadFromFile(path)
	r.NoError(err)
	defer loaded.Close()

	for name, data := range want {
		got, err := loaded.ReadFile(name)
		r.NoError(err)
		r.Equal(data, got)
	}

	// mutations keep working on the reloaded disk
	r.NoError(loaded.AppendFile("temp_file_0.txt", []byte(" plus")))
	got, err := loaded.ReadFile("temp_file_0.txt")
	r.NoError(err)
	r.Equal([]byte("Temporary content 0 plus"), got)
}

func TestLoadFromMissingFile(t *testing.T) {
	r := require.New(t)

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "no_such.img"))
	r.ErrorIs(err, ErrFileNotFound)
}

func TestCreateReplacesExistingImage(t *testing.T) {
	r := require.New(t)
	path := filepath.Join(t.TempDir(), "replace.img")

	d, err := CreateWithGeometry(path, 1024, 64*1024, 32)
	r.NoError(err)
	r.NoError(d.WriteFile("old.txt", []byte("old")))
	r.NoError(d.Close())

	d, err = CreateWithGeometry(path, 1024, 64*1024, 32)
	r.NoError(err)
	defer d.Close()

	_, err = d.ReadFile("old.txt")
	r.ErrorIs(err, ErrFileNotFound)
}

func TestOnDiskLayoutIsBitExact(t *testing.T) {
	r := require.New(t)
	path := filepath.Join(t.TempDir(), "layout.img")

	d, err := CreateWithGeometry(path, 1024, 16*1024, 8)
	r.NoError(err)
	r.NoError(d.WriteFile("a", []byte("alpha")))
	r.NoError(d.Close())

	raw, err := os.ReadFile(path)
	r.NoError(err)

	h, err := parseHeader(raw[:HeaderSize])
	r.NoError(err)
	r.Equal(FormatHeader{BlockSize: 1024, FatEntries: 16, MaxFiles: 8}, h)

	// block 0 carries the single-block chain terminator
	fat := raw[h.fatOffset() : h.fatOffset()+int64(h.FatEntries)*FatEntrySize]
	r.Equal([]byte{0xFF, 0xFF, 0xFF, 0xFF}, fat[:4])
	r.Equal(make([]byte, 15*4), fat[4:])

	entry := parseDirectoryEntry(raw[h.directoryOffset() : h.directoryOffset()+DirectoryEntrySize])
	r.Equal(DirectoryEntry{Name: "a", StartBlock: 0, FileSize: 5}, entry)

	r.Equal([]byte("alpha"), raw[h.dataOffset():h.dataOffset()+5])
}

func TestListFilesAndStats(t *testing.T) {
	r := require.New(t)
	path := filepath.Join(t.TempDir(), "stats.img")
	d, err := CreateWithGeometry(path, 1024, 64*1024, 16)
	r.NoError(err)
	defer d.Close()

	r.NoError(d.WriteFile("one.txt", make([]byte, 1024)))
	r.NoError(d.WriteFile("two.txt", make([]byte, 2048)))
	r.NoError(d.CreateFile("zero.txt"))

	list := d.ListFiles()
	r.Len(list, 3)
	r.Equal("one.txt", list[0].Name)
	r.Equal("two.txt", list[1].Name)
	r.Equal("zero.txt", list[2].Name)

	stats := d.Stats()
	r.Equal(1024, stats.BlockSize)
	r.Equal(64, stats.TotalBlocks)
	r.Equal(61, stats.FreeBlocks)
	r.Equal(16, stats.MaxFiles)
	r.Equal(3, stats.LiveFiles)
}
