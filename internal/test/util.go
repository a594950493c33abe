package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"philcali.me/forkify/internal/forkify"
)

const LOCAL_DDB_PORT = 8000

const API_PATH = "/api/v2/recipes/"

// RecipeAPI is an in-process stand-in for the forkify recipe API.
type RecipeAPI struct {
	Server *httptest.Server

	mu       sync.Mutex
	latency  time.Duration
	recipes  []forkify.Recipe
	requests int
}

func StartRecipeAPI(t *testing.T) *RecipeAPI {
	api := &RecipeAPI{}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Server.Close)
	return api
}

func (api *RecipeAPI) URL() string {
	return api.Server.URL + API_PATH
}

// SetLatency delays every subsequent response by d.
func (api *RecipeAPI) SetLatency(d time.Duration) {
	api.mu.Lock()
	defer api.mu.Unlock()
	api.latency = d
}

func (api *RecipeAPI) Requests() int {
	api.mu.Lock()
	defer api.mu.Unlock()
	return api.requests
}

func (api *RecipeAPI) Add(recipe forkify.Recipe) forkify.Recipe {
	api.mu.Lock()
	defer api.mu.Unlock()
	if recipe.Id == "" {
		recipe.Id = uuid.NewString()
	}
	api.recipes = append(api.recipes, recipe)
	return recipe
}

// Seed adds count recipes titled "<title> <n>" each serving four with one
// measured and one unmeasured ingredient.
func (api *RecipeAPI) Seed(title string, count int) []forkify.Recipe {
	var seeded []forkify.Recipe
	for i := 1; i <= count; i++ {
		seeded = append(seeded, api.Add(forkify.Recipe{
			Id:          fmt.Sprintf("%s-%02d", strings.ReplaceAll(title, " ", "-"), i),
			Title:       fmt.Sprintf("%s %d", title, i),
			Publisher:   "Closet Cooking",
			SourceUrl:   fmt.Sprintf("http://closetcooking.example/%s-%d", title, i),
			ImageUrl:    fmt.Sprintf("http://images.example/%s-%d.jpg", title, i),
			Servings:    4,
			CookingTime: 45,
			Ingredients: []forkify.Ingredient{
				{Quantity: aws.Float64(1.5), Unit: "cups", Description: "flour"},
				{Unit: "", Description: "salt"},
			},
		}))
	}
	return seeded
}

func (api *RecipeAPI) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (api *RecipeAPI) serve(w http.ResponseWriter, r *http.Request) {
	api.mu.Lock()
	api.requests++
	latency := api.latency
	api.mu.Unlock()
	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-r.Context().Done():
			return
		}
	}
	if !strings.HasPrefix(r.URL.Path, API_PATH) {
		api.writeJSON(w, http.StatusNotFound, forkify.ErrorResponse{Status: "fail", Message: "Route not found"})
		return
	}
	id := strings.TrimPrefix(r.URL.Path, API_PATH)
	switch {
	case r.Method == http.MethodPost:
		var recipe forkify.Recipe
		if err := json.NewDecoder(r.Body).Decode(&recipe); err != nil {
			api.writeJSON(w, http.StatusBadRequest, forkify.ErrorResponse{Status: "fail", Message: err.Error()})
			return
		}
		recipe.Id = ""
		recipe.Key = r.URL.Query().Get("key")
		created := api.Add(recipe)
		resp := forkify.RecipeResponse{Status: "success"}
		resp.Data.Recipe = created
		api.writeJSON(w, http.StatusCreated, resp)
	case id != "":
		api.mu.Lock()
		defer api.mu.Unlock()
		for _, recipe := range api.recipes {
			if recipe.Id == id {
				resp := forkify.RecipeResponse{Status: "success"}
				resp.Data.Recipe = recipe
				api.writeJSON(w, http.StatusOK, resp)
				return
			}
		}
		api.writeJSON(w, http.StatusBadRequest, forkify.ErrorResponse{
			Status:  "fail",
			Message: fmt.Sprintf("Invalid _id: %s", id),
		})
	default:
		query := strings.ToLower(r.URL.Query().Get("search"))
		resp := forkify.SearchResponse{Status: "success"}
		resp.Data.Recipes = []forkify.RecipePreview{}
		api.mu.Lock()
		for _, recipe := range api.recipes {
			if query != "" && strings.Contains(strings.ToLower(recipe.Title), query) {
				resp.Data.Recipes = append(resp.Data.Recipes, forkify.RecipePreview{
					Id:        recipe.Id,
					Title:     recipe.Title,
					Publisher: recipe.Publisher,
					ImageUrl:  recipe.ImageUrl,
					Key:       recipe.Key,
				})
			}
		}
		api.mu.Unlock()
		resp.Results = len(resp.Data.Recipes)
		api.writeJSON(w, http.StatusOK, resp)
	}
}

func CreateTable(client *dynamodb.Client) (string, error) {
	keySchema := []types.KeySchemaElement{
		{
			AttributeName: aws.String("PK"),
			KeyType:       types.KeyTypeHash,
		},
		{
			AttributeName: aws.String("SK"),
			KeyType:       types.KeyTypeRange,
		},
	}
	atrributes := []types.AttributeDefinition{
		{
			AttributeName: aws.String("PK"),
			AttributeType: types.ScalarAttributeTypeS,
		},
		{
			AttributeName: aws.String("SK"),
			AttributeType: types.ScalarAttributeTypeS,
		},
	}
	output, err := client.CreateTable(context.TODO(), &dynamodb.CreateTableInput{
		TableName:            aws.String("ForkifyData"),
		KeySchema:            keySchema,
		BillingMode:          types.BillingModePayPerRequest,
		AttributeDefinitions: atrributes,
	})
	if err != nil {
		return "", err
	}
	waiter := dynamodb.NewTableExistsWaiter(client, func(tewo *dynamodb.TableExistsWaiterOptions) {
		tewo.LogWaitAttempts = true
	})
	_, err = waiter.WaitForOutput(context.TODO(), &dynamodb.DescribeTableInput{
		TableName: output.TableDescription.TableName,
	}, time.Second*5)
	return *output.TableDescription.TableName, err
}

type LocalDynamoServer struct {
	Process *os.Process
	Port    int
}

func (l *LocalDynamoServer) CreateLocalClient() (*dynamodb.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRetryMaxAttempts(10),
		config.WithRegion("us-east-1"),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: fmt.Sprintf("http://localhost:%d", l.Port)}, nil
			})),
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     "fake",
				SecretAccessKey: "fake",
				SessionToken:    "fake",
			}}),
	)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(cfg), nil
}

// StartLocalServer launches DynamoDB Local from DYNAMODB_LOCAL_DIR (default
// ../../dynamodb relative to the test). The test is skipped when the jar or a
// java runtime is not available.
func StartLocalServer(port int, t *testing.T) *LocalDynamoServer {
	dir := os.Getenv("DYNAMODB_LOCAL_DIR")
	if dir == "" {
		dir = filepath.Join("..", "..", "dynamodb")
	}
	jar := filepath.Join(dir, "DynamoDBLocal.jar")
	if _, err := os.Stat(jar); err != nil {
		t.Skipf("DynamoDB Local not found at %s", jar)
	}
	if _, err := exec.LookPath("java"); err != nil {
		t.Skip("java runtime not found for DynamoDB Local")
	}
	cmd := exec.Command(
		"java", fmt.Sprintf("-Djava.library.path=%s", filepath.Join(dir, "DynamoDBLocal_lib")),
		"-jar", jar,
		"-port", strconv.Itoa(port),
		"-inMemory",
	)
	if err := cmd.Start(); err != nil {
		t.Fatalf("Failed to start local DDB server: %s", err)
	}
	t.Cleanup(func() {
		if err := cmd.Process.Kill(); err != nil {
			t.Fatalf("Failed to terminate local DDB server: %s", err)
		}
	})
	waitForPort(t, port)
	return &LocalDynamoServer{Port: port, Process: cmd.Process}
}

func waitForPort(t *testing.T, port int) {
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", fmt.Sprintf("localhost:%d", port), 100*time.Millisecond)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("DynamoDB Local never listened on %d", port)
}
