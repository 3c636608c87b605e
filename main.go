package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bellsenawat/instantsearch/pkg/connector"
	"github.com/bellsenawat/instantsearch/pkg/engine"
	"github.com/bellsenawat/instantsearch/pkg/insights"
	"github.com/bellsenawat/instantsearch/pkg/search"
	"github.com/bellsenawat/instantsearch/pkg/state"
)

var listenAddress = flag.String("listen", ":8080", "listen address")
var rabbitUrl = os.Getenv("RABBIT_URL")
var redisUrl = os.Getenv("REDIS_URL")
var redisPassword = os.Getenv("REDIS_PASSWORD")

type views struct {
	Menu       *connector.NumericMenuRenderState `json:"priceMenu"`
	Breadcrumb *connector.BreadcrumbRenderState  `json:"breadcrumb"`
	Pagination *connector.PaginationRenderState  `json:"pagination"`
	Hits       []search.Hit                      `json:"hits"`
}

func seed(idx *engine.Index) {
	idx.DeclareHierarchy("categories", "")
	docs := []engine.Document{
		{ID: 1, Fields: map[string]any{"name": "Compact camera", "price": 349.0, "categories": []string{"Cameras", "Compact"}}},
		{ID: 2, Fields: map[string]any{"name": "Mirrorless camera", "price": 1249.0, "categories": []string{"Cameras", "Mirrorless"}}},
		{ID: 3, Fields: map[string]any{"name": "Zoom lens", "price": 799.0, "categories": []string{"Cameras", "Lenses", "Zoom"}}},
		{ID: 4, Fields: map[string]any{"name": "Prime lens", "price": 499.0, "categories": []string{"Cameras", "Lenses", "Prime"}}},
		{ID: 5, Fields: map[string]any{"name": "Tripod", "price": 89.0, "categories": []string{"Accessories", "Tripods"}}},
		{ID: 6, Fields: map[string]any{"name": "Camera bag", "price": 59.0, "categories": []string{"Accessories", "Bags"}}},
		{ID: 7, Fields: map[string]any{"name": "Studio flash", "price": 649.0, "categories": []string{"Lighting", "Flashes"}}},
	}
	for _, doc := range docs {
		idx.Add(doc)
	}
}

func main() {
	flag.Parse()

	idx := engine.NewIndex()
	seed(idx)

	driver := search.NewDriver(idx, nil)
	if redisUrl != "" {
		driver.UseCache(search.NewCache(redisUrl, redisPassword, 0, 5*time.Minute))
	}
	if rabbitUrl != "" {
		events, err := insights.NewPublisher(rabbitUrl, "instantsearch")
		if err != nil {
			log.Printf("could not connect event publisher: %v", err)
		} else {
			driver.UseEvents(events)
		}
	}

	current := &views{}
	menu, err := connector.NewNumericMenu(connector.NumericMenuParams{
		Attribute: "price",
		Items: []connector.Option{
			connector.All("All"),
			connector.AtMost("Less than 100", 100),
			connector.Between("100 to 500", 100, 500),
			connector.AtLeast("More than 500", 500),
		},
	}, func(rs *connector.NumericMenuRenderState, _ bool) {
		current.Menu = rs
	})
	if err != nil {
		log.Fatal(err)
	}
	breadcrumb, err := connector.NewBreadcrumb(connector.BreadcrumbParams{
		Attributes: []string{"categories"},
	}, func(rs *connector.BreadcrumbRenderState, _ bool) {
		current.Breadcrumb = rs
	})
	if err != nil {
		log.Fatal(err)
	}
	pagination, err := connector.NewPagination(connector.PaginationParams{
		Padding: 2,
	}, func(rs *connector.PaginationRenderState, _ bool) {
		current.Pagination = rs
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := driver.AddWidgets(menu, breadcrumb, pagination); err != nil {
		log.Fatal(err)
	}
	if err := driver.Mount(); err != nil {
		log.Fatal(err)
	}

	var mu sync.Mutex
	http.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		next, err := state.Decode(driver.State(), r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := driver.SetState(next).Search(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		current.Hits = driver.Results().Hits
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(current); err != nil {
			log.Printf("could not write response: %v", err)
		}
	})
	http.Handle("/metrics", promhttp.Handler())

	log.Printf("listening on %s", *listenAddress)
	log.Fatal(http.ListenAndServe(*listenAddress, nil))
}
