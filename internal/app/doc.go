// Package app is the composition root for the Vegapp client.
//
// Run wires the pieces together in order:
//
//  1. config.Load()       read config file and environment
//  2. logging.Open()      slog to a file, the terminal belongs to the UI
//  3. session.Restore()   reload the persisted session, if any
//  4. api/agencebio       HTTP clients for the backend and open data
//  5. syncer.New()        optimistic sync engine over the session store
//  6. auth.New()          sign-in lifecycle around store and engine
//  7. StartSaver()        background session persistence
//  8. ui.Run()            start the TUI and block until exit
//
// Business logic lives in the domain packages; this package only
// connects them with sensible defaults.
package app
