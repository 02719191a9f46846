// Package idn implements the IDN-Hello / IDN-Stream wire codec (spec.md
// §4.C): bit-exact packet assembly for channel data, channel data with a
// prepended config descriptor, and channel close. Grounded directly on
// hue/entertainment.go's sendUDPPacket — a pre-sized []byte built with
// append, multi-byte fields written with encoding/binary — generalized from
// a fixed Hue-bridge layout into the three IDN packet shapes and widened to
// support both 8-bit and 16-bit negotiated channel widths.
package idn

import (
	"encoding/binary"

	"github.com/kungfusheep/laserctl/frame"
	"github.com/kungfusheep/laserctl/outputcfg"
)

// Command is the 1-byte IDN-Hello command code.
type Command uint8

// Command table (spec.md §4.C: "PING_REQUEST=0x08 ... RT_ACKNOWLEDGE=0x47").
// Exact byte values beyond RT_CHANNEL_MSG=0x40 are this implementation's own
// choice, documented in SPEC_FULL.md and held stable for the life of the
// module.
const (
	PingRequest       Command = 0x08
	PingResponse      Command = 0x09
	RTConfig          Command = 0x22
	RTChannelMsg      Command = 0x40
	RTChannelCloseReq Command = 0x44
	RTChannelCloseAck Command = 0x45
	RTAcknowledge     Command = 0x47
)

// DefaultPort is the IDN destination UDP port (spec.md §6).
const DefaultPort = 7255

const headerLen = 4

// header writes the common IDN-Hello envelope: [command:1][reserved:1]
// [sequence:2 BE].
func header(cmd Command, sequence uint16) []byte {
	b := make([]byte, headerLen)
	b[0] = byte(cmd)
	b[1] = 0
	binary.BigEndian.PutUint16(b[2:4], sequence)
	return b
}

// ChannelConfig describes the negotiated channel a data message targets.
type ChannelConfig struct {
	ServiceID uint8
	ChannelID uint8
	Output    outputcfg.Config
}

// encodeConfigDescriptor writes the channel configuration descriptor:
// [service_id:1][channel_id:1][color_bits:1][xy_bits:1][point_count:2 BE]
// (spec.md §4.C, SPEC_FULL.md §4.C layout).
func encodeConfigDescriptor(cfg ChannelConfig, pointCount uint16) []byte {
	b := make([]byte, 6)
	b[0] = cfg.ServiceID
	b[1] = cfg.ChannelID
	b[2] = byte(cfg.Output.ColorBits())
	b[3] = byte(cfg.Output.XYBits())
	binary.BigEndian.PutUint16(b[4:6], pointCount)
	return b
}

// encodePoints packs each point's XY and RGB fields at the widths
// cfg.Output negotiates: 1 byte per field at 8-bit, 2 bytes per field at
// 16-bit, all big-endian. XY values are rescaled from the frame's signed
// full-range representation into the channel's unsigned wire range via
// frame.Normalize; color channels are authored in 0-255 space (see
// frame.Point's doc comment) and always widened to 16-bit first via the
// teacher's RGBToUint16 *257 factor, then narrowed back down with everything
// else when the channel asks for 8-bit color.
func encodePoints(f frame.Frame, cfg outputcfg.Config) []byte {
	xyWide := cfg.XYBits() == 16
	colorWide := cfg.ColorBits() == 16

	fieldLen := func(wide bool) int {
		if wide {
			return 2
		}
		return 1
	}
	pointLen := 2*fieldLen(xyWide) + 3*fieldLen(colorWide)
	out := make([]byte, len(f)*pointLen)

	putField := func(buf []byte, wide bool, v uint16) int {
		if wide {
			binary.BigEndian.PutUint16(buf, v)
			return 2
		}
		buf[0] = byte(v >> 8)
		return 1
	}

	off := 0
	for _, pt := range f {
		xn := frame.Normalize(pt.X)
		yn := frame.Normalize(pt.Y)
		xu := uint16((xn + 1) / 2 * 65535)
		yu := uint16((yn + 1) / 2 * 65535)

		// Always widen to the full 16-bit range first, same as xu/yu above,
		// so putField's shared byte(v>>8) downscale is correct at 8-bit too;
		// narrowing un-widened 0-255 values would truncate every channel to 0.
		r, g, b := pt.R*257, pt.G*257, pt.B*257

		off += putField(out[off:], xyWide, xu)
		off += putField(out[off:], xyWide, yu)
		off += putField(out[off:], colorWide, r)
		off += putField(out[off:], colorWide, g)
		off += putField(out[off:], colorWide, b)
	}
	return out
}

// EncodeChannelData builds an IDN-Hello-wrapped RT_CHANNEL_MSG datagram
// carrying timestampUs and f's points packed per cfg: [timestamp_us:4 BE]
// [point_count:2 BE][point...] (spec.md §4.C data message layout).
func EncodeChannelData(sequence uint16, timestampUs uint32, cfg ChannelConfig, f frame.Frame) []byte {
	payload := make([]byte, 6)
	binary.BigEndian.PutUint32(payload[0:4], timestampUs)
	binary.BigEndian.PutUint16(payload[4:6], uint16(len(f)))
	payload = append(payload, encodePoints(f, cfg.Output)...)

	pkt := header(RTChannelMsg, sequence)
	return append(pkt, payload...)
}

// EncodeChannelDataWithConfig builds the same data message as
// EncodeChannelData, prepended with a channel configuration descriptor
// (spec.md §4.C "Channel Data With Config Prepended").
func EncodeChannelDataWithConfig(sequence uint16, timestampUs uint32, cfg ChannelConfig, f frame.Frame) []byte {
	descriptor := encodeConfigDescriptor(cfg, uint16(len(f)))

	payload := make([]byte, 6)
	binary.BigEndian.PutUint32(payload[0:4], timestampUs)
	binary.BigEndian.PutUint16(payload[4:6], uint16(len(f)))
	payload = append(payload, encodePoints(f, cfg.Output)...)

	pkt := header(RTConfig, sequence)
	pkt = append(pkt, descriptor...)
	pkt = append(pkt, payload...)
	return pkt
}

// EncodeChannelClose builds the graceful channel-close request datagram
// (RT_CHANNEL_CLOSE_REQ=0x44; the bridge/projector side would answer with
// RT_CHANNEL_CLOSE_ACK=0x45, which this sender-only codec does not parse).
func EncodeChannelClose(sequence uint16, cfg ChannelConfig) []byte {
	pkt := header(RTChannelCloseReq, sequence)
	pkt = append(pkt, cfg.ServiceID, cfg.ChannelID)
	return pkt
}

// RepublishIntervalUs is the config-republish ceiling (spec.md §4.C:
// "if >= 200ms have elapsed since last config emit"). Not a floor:
// emitting a config prepend more often than this is permitted.
const RepublishIntervalUs = 200_000

// ConfigDue reports whether, given the microsecond timestamp of the last
// config-prepended emit, a new one is due at nowUs.
func ConfigDue(lastConfigUs, nowUs uint32) bool {
	return nowUs-lastConfigUs >= RepublishIntervalUs
}
