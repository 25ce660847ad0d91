package dispatcher

import "context"

type SaveFn[E any] = func(ctx context.Context, items []E) error
