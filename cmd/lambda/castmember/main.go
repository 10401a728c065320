package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"movie-catalog-api/internal/config"
	"movie-catalog-api/internal/handlers"
	"movie-catalog-api/pkg/lambda"
)

func main() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(false); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	config.ConfigureLogging(cfg.Logging)
	logger := logrus.StandardLogger()

	serverless := config.DetectServerless()
	logger.WithFields(logrus.Fields{
		"mode":     serverless.GetDeploymentMode(),
		"stage":    serverless.Stage,
		"function": serverless.FunctionName,
		"store":    cfg.Store.Type,
	}).Info("Starting handler")

	// The store is only touched once a request carries a movie id
	connections := lambda.NewConnectionManager(cfg, logger)
	handler := handlers.NewLazyCastMemberHandler(connections.CastMemberService, logger)

	awslambda.StartWithOptions(
		lambda.Adapt(handler.HandleGet, logger),
		awslambda.WithEnableSIGTERM(connections.Shutdown),
	)
}
