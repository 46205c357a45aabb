package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewClient),
	fx.Invoke(RegisterLifecycle),
)

func RegisterLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := client.Ping(timeoutCtx); err != nil {
				return fmt.Errorf("MongoDB unavailable at startup: %w", err)
			}

			fmt.Printf("[MONGODB] Connected\n")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close(ctx)
		},
	})
}
