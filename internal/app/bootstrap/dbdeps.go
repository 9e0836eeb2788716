// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/flattrack/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
// Extend this struct as your app evolves.
type DBDeps struct {
	FlatTrackMongoClient   *mongo.Client
	FlatTrackMongoDatabase *mongo.Database

	// MailDispatch is nil when SMTP is not configured.
	MailDispatch *workers.MailDispatch
}
