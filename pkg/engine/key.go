package engine

import (
	"encoding/base64"
	"errors"
)

// IDLength is the length of a board ID string.
const IDLength = 14

// ErrInvalidID is returned when a board ID cannot be decoded into a legal
// checker configuration.
var ErrInvalidID = errors.New("engine: invalid board ID")

// Key is a compact 80-bit fingerprint of a checker configuration. For
// each side in turn (White then Black), the checker counts on points
// 0..23 and the bar are run-length encoded: one 1-bit per checker, a
// 0-bit closing each slot. Thirty checkers plus fifty slot terminators
// fill exactly ten bytes. Dice, borne-off counts, and the player to move
// are not part of the key.
//
// Keys are comparable and usable as map keys.
type Key struct {
	Data [10]uint8
}

// setBits writes n consecutive 1-bits starting at bit position pos.
func (k *Key) setBits(pos, n uint32) {
	i := pos / 8
	r := pos & 7
	b := ((uint32(1) << n) - 1) << r

	k.Data[i] |= uint8(b)
	if i+1 < uint32(len(k.Data)) {
		k.Data[i+1] |= uint8(b >> 8)
	}
	if i+2 < uint32(len(k.Data)) {
		k.Data[i+2] |= uint8(b >> 16)
	}
}

// Key returns the board's position fingerprint.
func (b Board) Key() Key {
	var k Key
	var pos uint32
	for _, c := range []Color{White, Black} {
		for i := 0; i < NumPoints; i++ {
			if b.Points[i].Owner == c {
				n := uint32(b.Points[i].Count)
				k.setBits(pos, n)
				pos += n + 1
			} else {
				pos++
			}
		}
		if n := uint32(b.Bar[c.Index()]); n > 0 {
			k.setBits(pos, n)
			pos += n + 1
		} else {
			pos++
		}
	}
	return k
}

// ID returns the key as a 14-character base64 string.
func (k Key) ID() string {
	return base64.RawStdEncoding.EncodeToString(k.Data[:])
}

// ID returns a compact string identifying the board's checker
// configuration.
func (b Board) ID() string {
	return b.Key().ID()
}

// ParseID decodes a board ID. The returned board carries the checkers of
// both sides with Off derived from the fifteen-per-side total; dice and
// the player to move are zero.
func ParseID(id string) (Board, error) {
	if len(id) != IDLength {
		return Board{}, ErrInvalidID
	}
	raw, err := base64.RawStdEncoding.DecodeString(id)
	if err != nil || len(raw) != len(Key{}.Data) {
		return Board{}, ErrInvalidID
	}
	var k Key
	copy(k.Data[:], raw)
	return k.Board()
}

// Board reconstructs the checker configuration the key encodes. It fails
// if the bit stream does not terminate all fifty slots, if a side has
// more than fifteen checkers, or if both sides occupy the same point.
func (k Key) Board() (Board, error) {
	var counts [2][NumPoints + 1]uint8
	side, slot := 0, 0
	for pos := 0; pos < 8*len(k.Data); pos++ {
		bit := k.Data[pos/8]&(1<<(pos&7)) != 0
		if side == 2 {
			if bit {
				return Board{}, ErrInvalidID
			}
			continue
		}
		if bit {
			counts[side][slot]++
			if counts[side][slot] > CheckersPerSide {
				return Board{}, ErrInvalidID
			}
		} else {
			slot++
			if slot == NumPoints+1 {
				side++
				slot = 0
			}
		}
	}
	if side != 2 {
		return Board{}, ErrInvalidID
	}

	var b Board
	for i := 0; i < NumPoints; i++ {
		w, bl := counts[0][i], counts[1][i]
		if w > 0 && bl > 0 {
			return Board{}, ErrInvalidID
		}
		switch {
		case w > 0:
			b.Points[i] = PointState{Count: w, Owner: White}
		case bl > 0:
			b.Points[i] = PointState{Count: bl, Owner: Black}
		}
	}
	b.Bar[White.Index()] = counts[0][NumPoints]
	b.Bar[Black.Index()] = counts[1][NumPoints]

	for _, c := range []Color{White, Black} {
		on := int(b.Bar[c.Index()])
		for i := 0; i < NumPoints; i++ {
			if b.Points[i].Owner == c {
				on += int(b.Points[i].Count)
			}
		}
		if on > CheckersPerSide {
			return Board{}, ErrInvalidID
		}
		b.Off[c.Index()] = uint8(CheckersPerSide - on)
	}
	return b, nil
}
