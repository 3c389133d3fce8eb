package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"

	"github.com/momentumhq/momentum-lambda/internal/config"
	"github.com/momentumhq/momentum-lambda/internal/container"
	"github.com/momentumhq/momentum-lambda/internal/router"
)

var chiLambda *chiadapter.ChiLambda

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return chiLambda.ProxyWithContext(ctx, req)
}

func main() {
	c := container.New()

	r := router.New(router.RouterConfig{
		UserHandler:    c.UserContainer.Handler,
		TimerHandler:   c.TimerContainer.Handler,
		GoalHandler:    c.GoalContainer.Handler,
		RoutineHandler: c.RoutineContainer.Handler,
		JournalHandler: c.JournalContainer.Handler,
		StatsHandler:   c.StatsContainer.Handler,
	})

	go c.RoutineContainer.MissedChecker.Run(context.Background(), time.Hour)

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		chiLambda = chiadapter.New(r)
		lambda.Start(handler)
		return
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	config.Logger().Infof("Listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		config.Logger().WithError(err).Fatal("Server stopped")
	}
}
