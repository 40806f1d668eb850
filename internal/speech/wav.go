package speech

import "encoding/binary"

// wavHeaderLen is the fixed RIFF/WAVE header size in bytes.
const wavHeaderLen = 44

// EncodeWAV wraps raw linear-PCM samples in a self-describing WAV
// container. The output is byte-identical for identical inputs: a 44-byte
// header followed by the payload verbatim.
//
// Header layout:
//
//	 0-3  "RIFF"          4-7  total length - 8 (LE)
//	 8-11 "WAVE"         12-15 "fmt "
//	16-19 16             20-21 1 (PCM)
//	22-23 channels       24-27 sample rate
//	28-31 byte rate      32-33 block align
//	34-35 bit depth      36-39 "data"
//	40-43 payload length (LE)
func EncodeWAV(pcm []byte, sampleRate, channels, bitDepth int) []byte {
	totalLen := wavHeaderLen + len(pcm)
	buf := make([]byte, totalLen)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(totalLen-8))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16) // fmt subchunk size
	binary.LittleEndian.PutUint16(buf[20:22], 1)  // PCM format tag
	binary.LittleEndian.PutUint16(buf[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(sampleRate*channels*bitDepth/8))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(channels*bitDepth/8))
	binary.LittleEndian.PutUint16(buf[34:36], uint16(bitDepth))

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(len(pcm)))

	copy(buf[wavHeaderLen:], pcm)
	return buf
}
