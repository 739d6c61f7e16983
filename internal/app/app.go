package app

import (
	"go.uber.org/fx"

	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/cache"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/config"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/database"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/logger"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/messaging"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/observability"
	repositoryorder "github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/repository/order"
	grpcserver "github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/server/grpc"
	httpserver "github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/server/http"
	serviceorder "github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/service/order"
	transporthttp "github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/transport/http"
	"github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/worker"
	workerorder "github.com/Sujeet-Kumar0/Coffee-Serverless-App/internal/worker/order"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositoryorder.Module,
	serviceorder.Module,
)

// HTTP wires the HTTP transport on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	transporthttp.Module,
)

// GRPC wires the gRPC server on top of the core modules.
var GRPC = fx.Options(
	Core,
	grpcserver.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerorder.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
