package compiler

import "strings"

// lineColumn converts a byte offset into source text to a 1-indexed
// (line, column) pair, grounded line-for-line on original_source's
// debug_info.rs line_column helper.
func lineColumn(src string, byteOffset int) (line, column int) {
	rows := strings.Split(strings.TrimSuffix(src, "\n"), "\n")
	total, line := 0, 1
	for _, row := range rows {
		newTotal := total + len(row) + 1
		if byteOffset < newTotal {
			return line, byteOffset - total + 1
		}
		total = newTotal
		line++
	}
	return line, byteOffset - total + 1
}

// byteOffset is the inverse of lineColumn: it converts a 1-indexed
// (line, column) cursor position back to a byte offset, for the IDE
// queries, which receive a cursor position and must find the entity
// under it. Grounded on debug_info.rs's HoverSystem::byte_pos.
func byteOffset(src string, line, column int) int {
	rows := strings.Split(strings.TrimSuffix(src, "\n"), "\n")
	bytes := 0
	for i, row := range rows {
		if i+1 >= line {
			bytes += column - 1
			break
		}
		bytes += len(row) + 1
	}
	return bytes
}
