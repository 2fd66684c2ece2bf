package gitrepo

import (
	"fmt"
	"strings"

	"github.com/temirov/gitstatus/internal/status"
)

const (
	porcelainRecordSeparatorConstant = "\x00"
	porcelainFieldSeparatorConstant  = " "
	porcelainOrdinaryEntryConstant   = '1'
	porcelainRenamedEntryConstant    = '2'
	porcelainUnmergedEntryConstant   = 'u'
	porcelainUntrackedEntryConstant  = '?'
	porcelainIgnoredEntryConstant    = '!'
	porcelainHeaderEntryConstant     = '#'
	porcelainOrdinaryFieldCount      = 9
	porcelainRenamedFieldCount       = 10
	porcelainUnmergedFieldCount      = 11
	malformedRecordTemplateConstant  = "malformed status record %q"
	missingOriginalTemplateConstant  = "renamed status record %q has no original path"
)

// StatusParseError reports output that does not follow the porcelain v2 format.
type StatusParseError struct {
	Record string
	Reason string
}

// Error describes the malformed record.
func (parseError StatusParseError) Error() string {
	return fmt.Sprintf(parseError.Reason, parseError.Record)
}

// ParsePorcelainStatus parses NUL-terminated `git status --porcelain=v2 -z` output.
// Header and ignored entries are dropped.
func ParsePorcelainStatus(output string) ([]status.FileStatus, error) {
	records := strings.Split(output, porcelainRecordSeparatorConstant)
	entries := make([]status.FileStatus, 0, len(records))

	for recordIndex := 0; recordIndex < len(records); recordIndex++ {
		record := records[recordIndex]
		if len(record) == 0 {
			continue
		}

		switch record[0] {
		case porcelainHeaderEntryConstant, porcelainIgnoredEntryConstant:
			continue
		case porcelainUntrackedEntryConstant:
			entries = append(entries, status.FileStatus{
				Path:     strings.TrimPrefix(record, string(porcelainUntrackedEntryConstant)+porcelainFieldSeparatorConstant),
				Index:    status.ChangeUntracked,
				Worktree: status.ChangeUntracked,
			})
		case porcelainOrdinaryEntryConstant:
			fields := strings.SplitN(record, porcelainFieldSeparatorConstant, porcelainOrdinaryFieldCount)
			if len(fields) != porcelainOrdinaryFieldCount || len(fields[1]) != 2 {
				return nil, StatusParseError{Record: record, Reason: malformedRecordTemplateConstant}
			}
			entries = append(entries, status.FileStatus{
				Path:     fields[porcelainOrdinaryFieldCount-1],
				Index:    changeKindFromCode(fields[1][0]),
				Worktree: changeKindFromCode(fields[1][1]),
			})
		case porcelainRenamedEntryConstant:
			fields := strings.SplitN(record, porcelainFieldSeparatorConstant, porcelainRenamedFieldCount)
			if len(fields) != porcelainRenamedFieldCount || len(fields[1]) != 2 {
				return nil, StatusParseError{Record: record, Reason: malformedRecordTemplateConstant}
			}
			if recordIndex+1 >= len(records) || len(records[recordIndex+1]) == 0 {
				return nil, StatusParseError{Record: record, Reason: missingOriginalTemplateConstant}
			}
			recordIndex++
			entries = append(entries, status.FileStatus{
				Path:         fields[porcelainRenamedFieldCount-1],
				OriginalPath: records[recordIndex],
				Index:        changeKindFromCode(fields[1][0]),
				Worktree:     changeKindFromCode(fields[1][1]),
			})
		case porcelainUnmergedEntryConstant:
			fields := strings.SplitN(record, porcelainFieldSeparatorConstant, porcelainUnmergedFieldCount)
			if len(fields) != porcelainUnmergedFieldCount {
				return nil, StatusParseError{Record: record, Reason: malformedRecordTemplateConstant}
			}
			entries = append(entries, status.FileStatus{
				Path:     fields[porcelainUnmergedFieldCount-1],
				Index:    status.ChangeUnmerged,
				Worktree: status.ChangeUnmerged,
			})
		default:
			return nil, StatusParseError{Record: record, Reason: malformedRecordTemplateConstant}
		}
	}

	return entries, nil
}

func changeKindFromCode(code byte) status.ChangeKind {
	switch code {
	case 'M':
		return status.ChangeModified
	case 'T':
		return status.ChangeTypeChanged
	case 'A':
		return status.ChangeAdded
	case 'D':
		return status.ChangeDeleted
	case 'R':
		return status.ChangeRenamed
	case 'C':
		return status.ChangeCopied
	case 'U':
		return status.ChangeUnmerged
	default:
		return status.ChangeUnmodified
	}
}
