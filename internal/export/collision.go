package export

import (
	"errors"
	"fmt"
	"strings"
)

// CollisionPolicy decides how a unit handles two blocks with the same tag.
type CollisionPolicy string

// Collision policies.
const (
	// CollisionAllow writes duplicate tags unchanged.
	CollisionAllow CollisionPolicy = "allow"
	// CollisionSuffix renames later duplicates to <tag>-2, <tag>-3, ...
	CollisionSuffix CollisionPolicy = "suffix"
	// CollisionMerge joins duplicate bodies under the first occurrence.
	CollisionMerge CollisionPolicy = "merge"
	// CollisionReject fails the unit.
	CollisionReject CollisionPolicy = "reject"
)

// ErrTagCollision is returned when CollisionReject meets a duplicate tag.
var ErrTagCollision = errors.New("duplicate tag in unit")

// CollisionPolicies lists the accepted policy names.
var CollisionPolicies = []CollisionPolicy{CollisionAllow, CollisionSuffix, CollisionMerge, CollisionReject}

// ParseCollisionPolicy validates a policy name. The empty string is
// CollisionAllow.
func ParseCollisionPolicy(name string) (CollisionPolicy, error) {
	if name == "" {
		return CollisionAllow, nil
	}
	for _, p := range CollisionPolicies {
		if strings.EqualFold(name, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown collision policy %q (want allow, suffix, merge, or reject)", name)
}

// Duplicates returns the tags that occur more than once in blocks, in order
// of their second occurrence.
func Duplicates(blocks []TagBlock) []string {
	seen := make(map[string]int, len(blocks))
	var dups []string
	for _, b := range blocks {
		seen[b.Tag]++
		if seen[b.Tag] == 2 {
			dups = append(dups, b.Tag)
		}
	}
	return dups
}

// resolveCollisions applies policy to blocks and returns the blocks to write.
// The input slice is not modified.
func resolveCollisions(blocks []TagBlock, policy CollisionPolicy) ([]TagBlock, error) {
	switch policy {
	case CollisionSuffix:
		return suffixDuplicates(blocks), nil
	case CollisionMerge:
		return mergeDuplicates(blocks), nil
	case CollisionReject:
		if dups := Duplicates(blocks); len(dups) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrTagCollision, strings.Join(dups, ", "))
		}
		return blocks, nil
	default:
		return blocks, nil
	}
}

// suffixDuplicates renames repeated tags. A generated name that is already
// taken by a real tag is skipped.
func suffixDuplicates(blocks []TagBlock) []TagBlock {
	taken := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		taken[b.Tag] = true
	}

	out := make([]TagBlock, 0, len(blocks))
	used := make(map[string]bool, len(blocks))
	next := make(map[string]int)
	for _, b := range blocks {
		if !used[b.Tag] {
			used[b.Tag] = true
			out = append(out, b)
			continue
		}
		n := next[b.Tag]
		if n == 0 {
			n = 2
		}
		candidate := fmt.Sprintf("%s-%d", b.Tag, n)
		for taken[candidate] || used[candidate] {
			n++
			candidate = fmt.Sprintf("%s-%d", b.Tag, n)
		}
		next[b.Tag] = n + 1
		used[candidate] = true
		out = append(out, TagBlock{Tag: candidate, Body: b.Body})
	}
	return out
}

// mergeDuplicates folds repeated tags into their first occurrence. Non-empty
// bodies are joined with a blank line.
func mergeDuplicates(blocks []TagBlock) []TagBlock {
	index := make(map[string]int, len(blocks))
	out := make([]TagBlock, 0, len(blocks))
	for _, b := range blocks {
		i, ok := index[b.Tag]
		if !ok {
			index[b.Tag] = len(out)
			out = append(out, b)
			continue
		}
		switch {
		case b.Body == "":
		case out[i].Body == "":
			out[i].Body = b.Body
		default:
			out[i].Body += "\n\n" + b.Body
		}
	}
	return out
}
