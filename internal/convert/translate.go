package convert

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Translate converts snippet to every language in langs.
//
// With jobs <= 1 the conversions run one after another in langs order and
// stop at the first failure. A larger jobs value runs up to that many
// conversions at once; the first failure cancels the context passed to the
// others.
func Translate(ctx context.Context, conv Converter, snippet string, langs []Language, jobs int) (map[Language]string, error) {
	sources := make(map[Language]string, len(langs))

	if jobs <= 1 {
		for _, lang := range langs {
			code, err := conv.Convert(ctx, snippet, lang)
			if err != nil {
				return nil, err
			}

			sources[lang] = code
		}

		return sources, nil
	}

	var mu sync.Mutex

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for _, lang := range langs {
		lang := lang

		group.Go(func() error {
			code, err := conv.Convert(gctx, snippet, lang)
			if err != nil {
				return err
			}

			mu.Lock()
			sources[lang] = code
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return sources, nil
}
