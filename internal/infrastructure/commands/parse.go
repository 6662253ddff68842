package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/doeshing/bareshell/internal/domain"
)

// parseNumber accepts 0x-prefixed hex or plain decimal.
func parseNumber(text string) (uint64, error) {
	var (
		v   uint64
		err error
	)
	if rest, ok := cutHexPrefix(text); ok {
		v, err = strconv.ParseUint(rest, 16, 64)
	} else {
		v, err = strconv.ParseUint(text, 10, 64)
	}
	if err != nil {
		return 0, domain.WrapError(domain.KindParse, fmt.Sprintf("invalid number '%s'", text), err)
	}
	return v, nil
}

func cutHexPrefix(text string) (string, bool) {
	if rest, ok := strings.CutPrefix(text, "0x"); ok {
		return rest, true
	}
	return strings.CutPrefix(text, "0X")
}

// parseWidth maps a poke size keyword to a byte width.
func parseWidth(text string) (int, bool) {
	switch text {
	case "byte":
		return domain.WidthByte, true
	case "word":
		return domain.WidthHalf, true
	case "long":
		return domain.WidthWord, true
	}
	return 0, false
}

func printable(b byte) byte {
	if b >= 0x20 && b <= 0x7E {
		return b
	}
	return '.'
}
