package tagsfile

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"

	"github.com/zero-day-ai/tagtree/gid"
)

// segmentPattern is the accepted form of one path segment: an identifier.
var segmentPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Validate checks the whole file and reports every problem at once. The returned error
// wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := validation.ValidateStruct(c,
		validation.Field(&c.Name,
			validation.Required,
			validation.Length(1, 64),
			validation.Match(namePattern).Error("must be lowercase letters, digits, '-' or '_'"),
		),
	); err != nil {
		result = multierror.Append(result, err)
	}

	listed := make(map[string]int, len(c.Tags.Paths))
	for i, p := range c.Tags.Paths {
		if err := validation.Validate(p, validation.Required, validation.By(validPath)); err != nil {
			result = multierror.Append(result, fmt.Errorf("tags.paths[%d] %q: %w", i, p, err))
			continue
		}
		if first, dup := listed[p]; dup {
			result = multierror.Append(result,
				fmt.Errorf("tags.paths[%d] %q: already listed at index %d", i, p, first))
			continue
		}
		listed[p] = i
	}

	all := make(map[string]struct{})
	for _, p := range c.AllPaths() {
		all[p] = struct{}{}
	}
	for _, from := range slices.Sorted(maps.Keys(c.Redirects)) {
		to := c.Redirects[from]
		if err := validation.Validate(from, validation.Required, validation.By(validPath)); err != nil {
			result = multierror.Append(result, fmt.Errorf("redirects %q: %w", from, err))
			continue
		}
		if _, ok := all[from]; ok {
			result = multierror.Append(result, fmt.Errorf("redirects %q: source is a defined path", from))
		}
		if _, ok := all[to]; !ok {
			result = multierror.Append(result, fmt.Errorf("redirects %q: target %q is not a defined path", from, to))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// validPath is a validation.RuleFunc for dot-separated tag paths.
func validPath(value interface{}) error {
	path, _ := value.(string)
	if path == "" {
		return nil
	}
	if _, err := gid.Split(path); err != nil {
		if errors.Is(err, gid.ErrDepthExceeded) {
			return fmt.Errorf("deeper than %d levels", gid.MaxDepth)
		}
		return errors.New("contains an empty segment")
	}
	for _, seg := range strings.Split(path, gid.Separator) {
		if err := validation.Validate(seg, validation.Match(segmentPattern)); err != nil {
			return fmt.Errorf("segment %q must be an identifier", seg)
		}
	}
	return nil
}
