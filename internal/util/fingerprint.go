package util

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
)

// CalculateFileFingerprint calculates a CRC32 fingerprint over the first and
// last 4KB of a file. Recordings are large flat arrays, so sampling both ends
// catches header rewrites as well as appended or truncated tails without
// hashing the whole file.
func CalculateFileFingerprint(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return "", err
	}

	size := stat.Size()
	chunk := int64(4096)
	if size <= 2*chunk {
		data := make([]byte, size)
		if _, err := io.ReadFull(file, data); err != nil {
			return "", err
		}
		return fmt.Sprintf("%08x", crc32.ChecksumIEEE(data)), nil
	}

	head := make([]byte, chunk)
	if _, err := io.ReadFull(file, head); err != nil {
		return "", err
	}

	if _, err := file.Seek(-chunk, io.SeekEnd); err != nil {
		return "", err
	}
	tail := make([]byte, chunk)
	if _, err := io.ReadFull(file, tail); err != nil {
		return "", err
	}

	crc := crc32.ChecksumIEEE(head)
	crc = crc32.Update(crc, crc32.IEEETable, tail)
	return fmt.Sprintf("%08x", crc), nil
}
