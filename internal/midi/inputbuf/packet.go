package inputbuf

import "github.com/leandrodaf/midikeys/sdk/contracts"

// messageLen returns the length in bytes of a message starting with status,
// or 0 for SysEx, which runs until 0xF7.
func messageLen(status byte) int {
	switch {
	case status < 0xC0, status >= 0xE0 && status < 0xF0:
		return 3
	case status < 0xE0:
		return 2
	case status == 0xF0:
		return 0
	case status == 0xF1, status == 0xF3:
		return 2
	case status == 0xF2:
		return 3
	default:
		return 1
	}
}

// SplitPacket decodes the channel messages in a raw packet that may mix
// message lengths and use running status. System messages are skipped and
// a truncated trailing message is dropped. It reports the decoded events and
// the number of bytes that could not be decoded.
func SplitPacket(data []byte, timestamp uint64) (events []contracts.MIDI, skipped int) {
	var running byte
	for i := 0; i < len(data); {
		begin := i
		status := data[i]
		if status < 0x80 {
			if running == 0 {
				skipped++
				i++
				continue
			}
			status = running
		} else {
			i++
			switch {
			case status < 0xF0:
				running = status
			case status < 0xF8:
				running = 0
			}
		}

		n := messageLen(status)
		if n == 0 {
			for i < len(data) && data[i] != 0xF7 {
				i++
			}
			if i < len(data) {
				i++
			}
			continue
		}
		if i+n-1 > len(data) {
			skipped += len(data) - begin
			break
		}
		body := data[i : i+n-1]
		i += n - 1
		if status >= 0xF0 {
			continue
		}

		ev := contracts.MIDI{
			Timestamp: timestamp,
			Command:   status & 0xF0,
			Channel:   status & 0x0F,
		}
		if len(body) > 0 {
			ev.Note = body[0]
		}
		if len(body) > 1 {
			ev.Velocity = body[1]
		}
		events = append(events, ev)
	}
	return events, skipped
}
