/*
Package resilience guards calls to a remote mathd server with a circuit
breaker.

A breaker starts closed. Once ShouldTrip approves after a failure it opens
and rejects calls with ErrCircuitOpen until Cooldown has passed. It then
admits MaxTrials trial calls: enough successes close it again and any
failure reopens it.

	Closed --[failures]-> Open --[cooldown]-> Half-Open --[successes]-> Closed
	                                              |
	                                          [failure]
	                                              v
	                                             Open

Usage:

	breaker := resilience.New("mathd-remote", resilience.Settings{
		Cooldown: 10 * time.Second,
		IsFailure: func(err error) bool {
			return err != nil && !errors.Is(err, client.ErrBadRequest)
		},
	})

	result, err := resilience.Call(ctx, breaker, func(ctx context.Context) (*types.Result, error) {
		return remote.call(ctx, "sqrt", args)
	})
*/
package resilience
