package cli

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
)

// computeInputsHash digests the decoded inputs and the packing options. Any
// change to a pixel, a file name, or a flag that affects placement produces
// a different sum.
func computeInputsHash(inputs []inputFile, packing *PackingFlags) uint64 {
	h := xxhash.New()

	sig := fmt.Sprintf("%s|%s|%d|%dx%d|%t|%t|%t\n",
		packing.Sort, packing.Rule, packing.Spacing,
		packing.PageW, packing.PageH, packing.Po2, packing.Rotate, packing.NoDedup)
	_, _ = h.WriteString(sig)

	var dims [8]byte
	for i := range inputs {
		t := &inputs[i].texture
		_, _ = h.WriteString(t.Name)
		_, _ = h.Write([]byte{0})

		binary.LittleEndian.PutUint32(dims[0:4], uint32(t.Width))
		binary.LittleEndian.PutUint32(dims[4:8], uint32(t.Height))
		_, _ = h.Write(dims[:])
		_, _ = h.Write(t.Image.Pix)
	}

	return h.Sum64()
}

// shouldSkipPack checks whether a previous run with the same inputs already
// produced the outputs.
func shouldSkipPack(cachePath, sidecarPath string, nextHash uint64) bool {
	prevHash, ok, err := readCacheHash(cachePath)
	if err != nil || !ok {
		return false
	}
	if prevHash != nextHash {
		return false
	}
	if _, err := os.Stat(sidecarPath); err != nil {
		return false
	}

	return true
}

// readCacheHash reads the cache hash from the file.
func readCacheHash(path string) (uint64, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}

		return 0, false, fmt.Errorf("read cache: %w", err)
	}

	if len(data) != 8 {
		return 0, false, nil
	}

	return binary.LittleEndian.Uint64(data), true, nil
}

// writeCacheHash writes the cache hash to the file.
func writeCacheHash(path string, hash uint64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, hash)
	if err := os.WriteFile(path, buf, 0600); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}

	return nil
}
