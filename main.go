package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AminovSarvarbek/telegramshopfront/api"
	"github.com/AminovSarvarbek/telegramshopfront/cart"
	"github.com/AminovSarvarbek/telegramshopfront/config"
	"github.com/AminovSarvarbek/telegramshopfront/pkg/logger"
	"github.com/AminovSarvarbek/telegramshopfront/session"
	"github.com/AminovSarvarbek/telegramshopfront/storage"
	"github.com/AminovSarvarbek/telegramshopfront/storefront"
)

// Demo CLI exercising the storefront core against a running backend:
// list the menu, add items to the locally persisted cart, check out.
func main() {
	var (
		listMenu = flag.Bool("menu", false, "Print the menu")
		add      = flag.String("add", "", "Comma-separated product ids to add to the cart")
		remove   = flag.String("remove", "", "Comma-separated product ids to remove from the cart")
		showCart = flag.Bool("cart", false, "Print the cart")
		checkout = flag.Bool("checkout", false, "Submit the cart as an order")
		initData = flag.String("initdata", "", "Raw Telegram init data (optional)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Telegram shop storefront demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  telegramshopfront [--menu] [--add ids] [--remove ids] [--cart] [--checkout]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Load()
	log := logger.New(logger.Config{
		Level:       logger.LogLevel(cfg.LogLevel),
		Format:      "text",
		Output:      "stderr",
		Component:   "cli",
		Environment: cfg.Environment,
	})

	ctx := context.Background()

	durable, err := storage.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatal("failed to open local storage", "error", err)
	}
	cache := storage.NewMemoryStore()

	var bridge session.Bridge = session.NoBridge{}
	if *initData != "" {
		b, err := session.NewWebAppBridge(*initData)
		if err != nil {
			log.Fatal("invalid init data", "error", err)
		}
		bridge = b
	}
	if err := session.WaitReady(ctx, bridge, 0); err != nil {
		log.Fatal("hosting runtime not available", "error", err)
	}

	resolver := session.NewResolver(bridge, cache, cfg.Hostname, log)
	client := api.NewClient(api.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Cache:   cache,
		Logger:  log,
	})
	basket := cart.New(ctx, durable, log)
	shop := storefront.NewService(basket, resolver, client, log)

	if *listMenu {
		menu, err := shop.LoadMenu(ctx)
		if err != nil {
			log.Fatal("failed to load menu", "error", err)
		}
		for _, p := range menu {
			fmt.Printf("%3d  %-30s %s\n", p.ID, p.Name, p.Price.Format())
		}
	}

	if *add != "" {
		menu, err := shop.LoadMenu(ctx)
		if err != nil {
			log.Fatal("failed to load menu", "error", err)
		}
		for _, id := range parseIDs(*add, log) {
			found := false
			for _, p := range menu {
				if p.ID == id {
					basket.Add(ctx, p)
					found = true
					break
				}
			}
			if !found {
				log.Warn("no such product", "id", id)
			}
		}
	}

	if *remove != "" {
		for _, id := range parseIDs(*remove, log) {
			basket.Remove(ctx, id)
		}
	}

	if *showCart || *add != "" || *remove != "" {
		for _, l := range basket.Lines() {
			fmt.Printf("%3d  %-30s x%d  %s\n", l.ID, l.Name, l.Quantity, l.Subtotal().Format())
		}
		fmt.Printf("total: %d items, %s\n", basket.TotalItems(), basket.TotalPrice().Format())
	}

	if *checkout {
		resp, err := shop.Checkout(ctx)
		if err != nil {
			log.Fatal("checkout failed", "error", err)
		}
		if resp.Success {
			fmt.Printf("order placed: %s\n", resp.OrderID)
		} else {
			msg := resp.Message
			if msg == "" {
				msg = "order was not accepted"
			}
			fmt.Println(msg)
		}
	}
}

func parseIDs(s string, log *logger.Logger) []int64 {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Warn("skipping invalid product id", "value", part)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
