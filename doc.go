// Package gridpricer schedules batches of bonds to be priced across one local
// serial lane and an elastically sized grid of serial lanes, minimising the
// completion time of the batch with online, item by item placement.
//
// End-users typically interact with the scheduler via the Service facade
// exposed by the root package:
//
//	srv, _ := gridpricer.New()
//	defer srv.Shutdown()
//	run, _ := srv.Schedule(ctx, model.NewBatch(4, 2, 0))
//	fmt.Println(run.CompletionTime) // 10
//
// Lower level building blocks live in service/lane, service/pool,
// service/dispatcher and service/strategy.
package gridpricer
