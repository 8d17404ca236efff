// package repositories composes the store, the reconciliation and merge
// policies, and the import pipeline into the operations the rest of the
// application calls, and persists the import history journal.
package repositories
