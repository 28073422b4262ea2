// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/TopPano/providence-engine/internal/adapters/archive"
	_ "github.com/TopPano/providence-engine/internal/adapters/config"
	_ "github.com/TopPano/providence-engine/internal/adapters/descriptor"
	_ "github.com/TopPano/providence-engine/internal/adapters/docker"
	_ "github.com/TopPano/providence-engine/internal/adapters/etcd"
	_ "github.com/TopPano/providence-engine/internal/adapters/logger"
	_ "github.com/TopPano/providence-engine/internal/adapters/nats"
	_ "github.com/TopPano/providence-engine/internal/adapters/registry"
	_ "github.com/TopPano/providence-engine/internal/adapters/s3"
	_ "github.com/TopPano/providence-engine/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "github.com/TopPano/providence-engine/internal/app"
	_ "github.com/TopPano/providence-engine/internal/engine/pipeline"
	_ "github.com/TopPano/providence-engine/internal/engine/router"
)
