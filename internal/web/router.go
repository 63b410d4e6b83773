package web

import (
	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"
)

type Routers struct {
	Service Service
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(LoggingMiddleware())
	app.Use(cors.Default())
	apiGroup := app.Group("/v1")

	apiGroup.GET("/rsvp/search", r.Service.SearchAttendees)
	apiGroup.POST("/rsvp/:id/respond", r.Service.SubmitRSVP)
	apiGroup.POST("/rsvp/group/:groupId/respond", r.Service.SubmitGroupRSVP)
	apiGroup.GET("/groups/:id", r.Service.GetGroup)

	adminGroup := apiGroup.Group("/admin")
	adminGroup.GET("/attendees", r.Service.ListAttendees)
	adminGroup.POST("/attendees", r.Service.CreateAttendee)
	adminGroup.GET("/attendees/:id", r.Service.GetAttendee)
	adminGroup.PUT("/attendees/:id", r.Service.UpdateAttendee)
	adminGroup.DELETE("/attendees/:id", r.Service.DeleteAttendee)
	adminGroup.POST("/attendees/bulk-upload", r.Service.BulkUpload)
	adminGroup.GET("/groups", r.Service.ListGroups)
	adminGroup.POST("/groups", r.Service.CreateGroup)
	adminGroup.GET("/groups/:id", r.Service.GetGroupAdmin)
	adminGroup.DELETE("/groups/:id", r.Service.DeleteGroup)
	adminGroup.PUT("/groups/:id/members", r.Service.UpdateGroupMembers)

	app.GET("/internal/errors", r.Service.RecentReports)
	app.DELETE("/internal/errors", r.Service.ClearReports)

	app.GET("/", func(c *ginext.Context) {
		c.File("./frontend/index.html")
	})
	app.GET("/rsvp", func(c *ginext.Context) {
		c.File("./frontend/rsvp.html")
	})
	app.GET("/admin", func(c *ginext.Context) {
		c.File("./frontend/admin.html")
	})
	app.Static("/frontend", "./frontend")

	return app
}
