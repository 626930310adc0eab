package router

import (
	"github.com/gin-gonic/gin"
	"github.com/kioskcrm/backend/internal/domain/identity"
	"github.com/kioskcrm/backend/internal/interfaces/http/handler"
	"github.com/kioskcrm/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler mounted under the versioned API
type Handlers struct {
	System      *handler.SystemHandler
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Geo         *handler.GeoHandler
	FC          *handler.FCHandler
	Corporation *handler.CorporationHandler
	Branch      *handler.BranchHandler
	Partner     *handler.PartnerHandler
	Kiosk       *handler.KioskHandler
	Order       *handler.OrderHandler
	Process     *handler.ProcessHandler
	Delivery    *handler.DeliveryHandler
	Campaign    *handler.CampaignHandler
	Lead        *handler.LeadHandler
	Transfer    *handler.TransferHandler
	Cron        *handler.CronHandler
}

// Guards are the middleware chains the API groups are mounted behind.
//
// Authenticated runs on every tenant-scoped route (typically Auth followed by
// TracingAttributes and Profiling). LoginLimit throttles the login endpoint
// and Cron protects the scheduler trigger; either may be nil.
type Guards struct {
	Authenticated []gin.HandlerFunc
	LoginLimit    gin.HandlerFunc
	Cron          gin.HandlerFunc
}

// RegisterAPI registers the domain groups of the kiosk CRM on r
func RegisterAPI(r *Router, h Handlers, g Guards) {
	r.Register(
		systemRoutes(h),
		authRoutes(h, g),
		userRoutes(h, g),
		geoRoutes(h, g),
		organizationRoutes(h, g),
		partnerRoutes(h, g),
		kioskRoutes(h, g),
		workflowRoutes(h, g),
		marketingRoutes(h, g),
		transferRoutes(h, g),
		cronRoutes(h, g),
	)
}

func systemRoutes(h Handlers) *DomainGroup {
	dg := NewDomainGroup("system", "/system")
	dg.GET("/info", h.System.GetSystemInfo)
	dg.GET("/ping", h.System.Ping)
	return dg
}

func authRoutes(h Handlers, g Guards) *DomainGroup {
	dg := NewDomainGroup("auth", "/auth")
	if g.LoginLimit != nil {
		dg.POST("/login", g.LoginLimit, h.Auth.Login)
	} else {
		dg.POST("/login", h.Auth.Login)
	}

	session := NewDomainGroup("auth-session", "")
	session.Use(g.Authenticated...)
	session.POST("/logout", h.Auth.Logout)
	session.GET("/me", h.Auth.Me)
	session.PUT("/password", h.Auth.ChangePassword)
	dg.Mount(session)
	return dg
}

func userRoutes(h Handlers, g Guards) *DomainGroup {
	dg := NewDomainGroup("users", "/users")
	dg.Use(g.Authenticated...)
	dg.Use(middleware.RequireRole(identity.RoleAdmin))
	dg.POST("", h.User.Create)
	dg.GET("", h.User.List)
	dg.GET("/:id", h.User.GetByID)
	dg.PUT("/:id", h.User.Update)
	dg.DELETE("/:id", h.User.Delete)
	return dg
}

// writable returns a tenant-scoped group that rejects mutating requests
// from read-only principals
func writable(name, prefix string, g Guards) *DomainGroup {
	dg := NewDomainGroup(name, prefix)
	dg.Use(g.Authenticated...)
	dg.Use(middleware.RequireWrite())
	return dg
}

func geoRoutes(h Handlers, g Guards) *DomainGroup {
	regions := NewDomainGroup("regions", "/regions")
	regions.GET("", h.Geo.ListRegions)
	regions.POST("", h.Geo.CreateRegion)
	regions.GET("/:id", h.Geo.GetRegion)
	regions.PUT("/:id", h.Geo.UpdateRegion)
	regions.DELETE("/:id", h.Geo.DeleteRegion)

	areas := NewDomainGroup("areas", "/areas")
	areas.GET("/catalog", h.Geo.Catalog)
	areas.POST("/match", h.Geo.Match)
	areas.POST("/seed", middleware.RequireRole(identity.RoleAdmin), h.Geo.Seed)
	areas.GET("", h.Geo.ListAreas)
	areas.POST("", h.Geo.CreateArea)
	areas.GET("/:id", h.Geo.GetArea)
	areas.PUT("/:id", h.Geo.UpdateArea)
	areas.DELETE("/:id", h.Geo.DeleteArea)

	root := writable("geo", "", g)
	root.Mount(regions)
	root.Mount(areas)
	return root
}

func organizationRoutes(h Handlers, g Guards) *DomainGroup {
	fcs := NewDomainGroup("fcs", "/fcs")
	fcs.GET("/next-code", h.FC.NextCode)
	fcs.GET("", h.FC.List)
	fcs.POST("", h.FC.Create)
	fcs.GET("/:id", h.FC.GetByID)
	fcs.GET("/:id/tree", h.FC.Tree)
	fcs.PUT("/:id", h.FC.Update)
	fcs.DELETE("/:id", h.FC.Delete)

	corporations := NewDomainGroup("corporations", "/corporations")
	corporations.GET("/next-code", h.Corporation.NextCode)
	corporations.GET("", h.Corporation.List)
	corporations.POST("", h.Corporation.Create)
	corporations.GET("/:id", h.Corporation.GetByID)
	corporations.PUT("/:id", h.Corporation.Update)
	corporations.DELETE("/:id", h.Corporation.Delete)

	branches := NewDomainGroup("branches", "/branches")
	branches.GET("/next-code", h.Branch.NextCode)
	branches.GET("", h.Branch.List)
	branches.POST("", h.Branch.Create)
	branches.GET("/:id", h.Branch.GetByID)
	branches.PUT("/:id", h.Branch.Update)
	branches.DELETE("/:id", h.Branch.Delete)

	root := writable("organization", "", g)
	root.Mount(fcs)
	root.Mount(corporations)
	root.Mount(branches)
	return root
}

func partnerRoutes(h Handlers, g Guards) *DomainGroup {
	partners := NewDomainGroup("partners", "/partners")
	partners.GET("/next-code", h.Partner.NextCode)
	partners.GET("", h.Partner.List)
	partners.POST("", h.Partner.Create)
	partners.GET("/:id", h.Partner.GetByID)
	partners.PUT("/:id", h.Partner.Update)
	partners.DELETE("/:id", h.Partner.Delete)
	partners.POST("/:id/pipedrive-sync", h.Partner.SyncPipedrive)
	partners.GET("/:id/pricings", h.Partner.ListPricings)

	pricings := NewDomainGroup("pricings", "/pricings")
	pricings.POST("", h.Partner.CreatePricing)
	pricings.GET("/effective", h.Partner.EffectivePricing)
	pricings.GET("/:id", h.Partner.GetPricing)
	pricings.PUT("/:id", h.Partner.UpdatePricing)
	pricings.DELETE("/:id", h.Partner.DeletePricing)

	root := writable("partner", "", g)
	root.Mount(partners)
	root.Mount(pricings)
	return root
}

func kioskRoutes(h Handlers, g Guards) *DomainGroup {
	dg := writable("kiosks", "/kiosks", g)
	dg.GET("/summary", h.Kiosk.Summary)
	dg.GET("", h.Kiosk.List)
	dg.POST("", h.Kiosk.Create)
	dg.GET("/:id", h.Kiosk.GetByID)
	dg.PUT("/:id", h.Kiosk.Update)
	dg.DELETE("/:id", h.Kiosk.Delete)
	dg.POST("/:id/lease", h.Kiosk.Lease)
	dg.POST("/:id/sale", h.Kiosk.Sell)
	dg.GET("/:id/contracts", h.Kiosk.Contracts)
	dg.POST("/:id/contracts/:contract_id/end", h.Kiosk.EndContract)
	return dg
}

func workflowRoutes(h Handlers, g Guards) *DomainGroup {
	orders := NewDomainGroup("orders", "/orders")
	orders.GET("/next-number", h.Order.NextNumber)
	orders.GET("", h.Order.List)
	orders.POST("", h.Order.Create)
	orders.GET("/:id", h.Order.GetByID)
	orders.PUT("/:id", h.Order.Update)
	orders.DELETE("/:id", h.Order.Delete)
	orders.GET("/:id/quotation.pdf", h.Order.Quotation)

	processes := NewDomainGroup("processes", "/processes")
	processes.GET("", h.Process.List)
	processes.POST("", h.Process.Create)
	processes.GET("/:id", h.Process.GetByID)
	processes.PUT("/:id", h.Process.Update)
	processes.DELETE("/:id", h.Process.Delete)

	deliveries := NewDomainGroup("deliveries", "/deliveries")
	deliveries.GET("", h.Delivery.List)
	deliveries.POST("", h.Delivery.Create)
	deliveries.GET("/:id", h.Delivery.GetByID)
	deliveries.PUT("/:id", h.Delivery.Update)
	deliveries.DELETE("/:id", h.Delivery.Delete)

	root := writable("workflow", "", g)
	root.Mount(orders)
	root.Mount(processes)
	root.Mount(deliveries)
	return root
}

func marketingRoutes(h Handlers, g Guards) *DomainGroup {
	campaigns := NewDomainGroup("campaigns", "/campaigns")
	campaigns.GET("", h.Campaign.List)
	campaigns.POST("", h.Campaign.Create)
	campaigns.GET("/:id", h.Campaign.GetByID)
	campaigns.PUT("/:id", h.Campaign.Update)
	campaigns.DELETE("/:id", h.Campaign.Delete)
	campaigns.GET("/:id/stats", h.Campaign.Stats)

	leads := NewDomainGroup("leads", "/leads")
	leads.GET("", h.Lead.List)
	leads.POST("", h.Lead.Create)
	leads.GET("/:id", h.Lead.GetByID)
	leads.PUT("/:id", h.Lead.Update)
	leads.DELETE("/:id", h.Lead.Delete)
	leads.POST("/:id/convert", h.Lead.Convert)
	leads.POST("/:id/pipedrive-sync", h.Lead.SyncPipedrive)

	root := writable("marketing", "", g)
	root.Mount(campaigns)
	root.Mount(leads)
	return root
}

func transferRoutes(h Handlers, g Guards) *DomainGroup {
	imports := NewDomainGroup("import", "/import")
	imports.POST("/kiosks", h.Transfer.ImportKiosks)
	imports.POST("/partners", h.Transfer.ImportPartners)

	exports := NewDomainGroup("export", "/export")
	exports.GET("/:resource", h.Transfer.Export)
	exports.POST("/:resource/s3", h.Transfer.ExportToS3)

	root := writable("transfer", "", g)
	root.Mount(imports)
	root.Mount(exports)
	return root
}

func cronRoutes(h Handlers, g Guards) *DomainGroup {
	dg := NewDomainGroup("cron", "/cron")
	dg.Use(g.Cron)
	dg.POST("/reminders", h.Cron.Reminders)
	return dg
}
