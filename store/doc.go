/*
Package store persists weblog entries.

[Connect] opens a [Pool] against either a SQLite file or, given a postgres:// URL, a PostgreSQL database.
Requests never share a connection:
each one borrows a [Scope] from the [Pool],
which opens a single connection the first time [*Scope.DB] is called
and releases it when [*Scope.Close] is called.
A Scope that never opened a connection closes without touching the [Pool].

[*DB] exposes the two entry operations, [*DB.ListEntries] and [*DB.AddEntry].
*/
package store
