package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

// SampleRate of rendered clips.
const SampleRate = 44100

const (
	linearAttack = 10 * time.Millisecond
	warmAttack   = 20 * time.Millisecond
	// tailDuration is the silence kept after each tone, as an oscillator
	// stopped 100ms after its envelope ends.
	tailDuration = 100 * time.Millisecond
	floorGain    = 0.001
)

// Render mixes the program into mono samples in [-1, 1].
func Render(program Program) []float64 {
	total := samplesFor(program.Length())
	samples := make([]float64, total)

	for _, tone := range program {
		start := samplesFor(tone.Offset)
		count := samplesFor(tone.Duration + tailDuration)
		for i := 0; i < count && start+i < total; i++ {
			t := float64(i) / SampleRate
			gain := tone.gainAt(t)
			samples[start+i] += math.Sin(2*math.Pi*tone.Freq*t) * gain
		}
	}

	for i, sample := range samples {
		samples[i] = math.Max(-1, math.Min(1, sample))
	}
	return samples
}

func samplesFor(duration time.Duration) int {
	return int(math.Ceil(duration.Seconds() * SampleRate))
}

func (tone Tone) gainAt(t float64) float64 {
	duration := tone.Duration.Seconds()
	if t >= duration || tone.Volume <= 0 {
		return 0
	}

	switch tone.Envelope {
	case EnvelopeWarm:
		attack := warmAttack.Seconds()
		hold := duration * 0.3
		switch {
		case t < attack:
			return floorGain * math.Pow(tone.Volume/floorGain, t/attack)
		case t < hold:
			return tone.Volume
		default:
			progress := (t - math.Max(hold, attack)) / (duration - math.Max(hold, attack))
			return tone.Volume * math.Pow(floorGain/tone.Volume, progress)
		}
	default:
		attack := linearAttack.Seconds()
		if t < attack {
			return t / attack * tone.Volume
		}
		progress := (t - attack) / (duration - attack)
		return tone.Volume * math.Pow(floorGain/tone.Volume, progress)
	}
}

// EncodeWAV writes samples as a mono 16-bit PCM RIFF file.
func EncodeWAV(samples []float64) []byte {
	const (
		channels      = 1
		bitsPerSample = 16
		blockAlign    = channels * bitsPerSample / 8
	)
	dataSize := len(samples) * blockAlign

	var buf bytes.Buffer
	buf.Grow(44 + dataSize)
	buf.WriteString("RIFF")
	writeLE(&buf, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	writeLE(&buf, uint32(16))
	writeLE(&buf, uint16(1))
	writeLE(&buf, uint16(channels))
	writeLE(&buf, uint32(SampleRate))
	writeLE(&buf, uint32(SampleRate*blockAlign))
	writeLE(&buf, uint16(blockAlign))
	writeLE(&buf, uint16(bitsPerSample))

	buf.WriteString("data")
	writeLE(&buf, uint32(dataSize))
	for _, sample := range samples {
		writeLE(&buf, int16(math.Round(math.Max(-1, math.Min(1, sample))*math.MaxInt16)))
	}
	return buf.Bytes()
}

func writeLE(buf *bytes.Buffer, value any) {
	// bytes.Buffer writes never fail.
	_ = binary.Write(buf, binary.LittleEndian, value)
}
