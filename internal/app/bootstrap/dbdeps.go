// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	draftstore "github.com/dalemusser/workbookhub/internal/app/store/drafts"
	"github.com/dalemusser/workbookhub/internal/app/system/refcache"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Drafts persists staged workbooks until they are published.
	Drafts *draftstore.Store

	// RefCache is nil when no Redis address is configured.
	RefCache *refcache.Cache
}
