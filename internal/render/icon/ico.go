package icon

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	icoHeaderSize = 6
	icoEntrySize  = 16
	icoTypeIcon   = 1
	icoPlanes     = 1
	icoBitCount   = 32
	icoMaxEdge    = 256
)

// errNoImages is returned when packing an empty image list.
var errNoImages = errors.New("ico needs at least one image")

// Image is one PNG encoded square image of the given edge size.
type Image struct {
	Size int
	PNG  []byte
}

// ICO returns the set packed into a Windows icon file, small image first.
func (s Set) ICO() ([]byte, error) {
	return PackICO(
		Image{Size: SmallSize, PNG: s.Small},
		Image{Size: LargeSize, PNG: s.Large},
	)
}

// PackICO packs PNG images into an ICO container.
// Windows Vista and later read PNG payloads directly.
func PackICO(images ...Image) ([]byte, error) {
	if len(images) == 0 {
		return nil, errNoImages
	}

	var buf bytes.Buffer

	header := struct {
		Reserved uint16
		Type     uint16
		Count    uint16
	}{
		Type:  icoTypeIcon,
		Count: uint16(len(images)), //nolint:gosec // Callers pass a handful of images.
	}

	if err := binary.Write(&buf, binary.LittleEndian, header); err != nil {
		return nil, err
	}

	offset := icoHeaderSize + icoEntrySize*len(images)

	for _, img := range images {
		if img.Size <= 0 || img.Size > icoMaxEdge {
			return nil, fmt.Errorf("invalid ico image size %d", img.Size)
		}

		if len(img.PNG) == 0 {
			return nil, fmt.Errorf("empty %dpx image", img.Size)
		}

		// 0 means 256 in the ICO format.
		edge := uint8(img.Size % icoMaxEdge) //nolint:gosec // Bounded above.

		entry := struct {
			Width      uint8
			Height     uint8
			ColorCount uint8
			Reserved   uint8
			Planes     uint16
			BitCount   uint16
			BytesInRes uint32
			Offset     uint32
		}{
			Width:      edge,
			Height:     edge,
			Planes:     icoPlanes,
			BitCount:   icoBitCount,
			BytesInRes: uint32(len(img.PNG)), //nolint:gosec // Embedded assets are tiny.
			Offset:     uint32(offset),       //nolint:gosec // Embedded assets are tiny.
		}

		if err := binary.Write(&buf, binary.LittleEndian, entry); err != nil {
			return nil, err
		}

		offset += len(img.PNG)
	}

	for _, img := range images {
		buf.Write(img.PNG)
	}

	return buf.Bytes(), nil
}
