package web

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"github.com/JulianB-Git/nicolash-frontend/internal/apiclient"
	"github.com/JulianB-Git/nicolash-frontend/internal/dto"
	"github.com/JulianB-Git/nicolash-frontend/internal/report"
	"github.com/JulianB-Git/nicolash-frontend/pkg/validator"
)

type Service interface {
	SearchAttendees(ctx *ginext.Context)
	SubmitRSVP(ctx *ginext.Context)
	SubmitGroupRSVP(ctx *ginext.Context)
	GetGroup(ctx *ginext.Context)

	ListAttendees(ctx *ginext.Context)
	CreateAttendee(ctx *ginext.Context)
	GetAttendee(ctx *ginext.Context)
	UpdateAttendee(ctx *ginext.Context)
	DeleteAttendee(ctx *ginext.Context)
	BulkUpload(ctx *ginext.Context)

	CreateGroup(ctx *ginext.Context)
	ListGroups(ctx *ginext.Context)
	GetGroupAdmin(ctx *ginext.Context)
	DeleteGroup(ctx *ginext.Context)
	UpdateGroupMembers(ctx *ginext.Context)

	RecentReports(ctx *ginext.Context)
	ClearReports(ctx *ginext.Context)
}

type service struct {
	public    *apiclient.PublicClient
	clientCfg apiclient.Config
	reports   *report.Logger
	sink      *report.Sink
	log       *zerolog.Logger
}

func NewService(clientCfg apiclient.Config, reports *report.Logger, sink *report.Sink, logger *zerolog.Logger) Service {
	return &service{
		public:    apiclient.NewPublicClient(clientCfg),
		clientCfg: clientCfg,
		reports:   reports,
		sink:      sink,
		log:       logger,
	}
}

// adminFor builds an admin client bound to the bearer token of the incoming
// request. Requests without a token go through unauthenticated and get the
// backend's 401 back.
func (s *service) adminFor(ctx *ginext.Context) *apiclient.AdminClient {
	token := strings.TrimSpace(strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer "))
	return apiclient.NewAdminClient(s.clientCfg, apiclient.StaticToken(token))
}

func (s *service) invalid(ctx *ginext.Context, form string, err error) {
	s.reports.ReportFormError(form, "", fmt.Sprintf("%v", err))
	dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", err))
}

func (s *service) SearchAttendees(ctx *ginext.Context) {
	req := dto.SearchRequest{Name: strings.TrimSpace(ctx.Query("name"))}
	if verr := validator.Validate(ctx, req); verr != nil {
		s.invalid(ctx, "rsvp search", verr)
		return
	}

	attendees, err := s.public.SearchAttendees(ctx.Request.Context(), req.Name)
	if err != nil {
		dto.UpstreamErrorResponse(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, attendees)
}

func (s *service) SubmitRSVP(ctx *ginext.Context) {
	id := ctx.Param("id")

	var req dto.RSVPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		s.invalid(ctx, "rsvp form", verr)
		return
	}

	err := s.public.SubmitRSVP(
		ctx.Request.Context(),
		id,
		apiclient.RSVPStatus(req.RSVPStatus),
		apiclient.DietaryRequirement(req.DietaryRequirements),
	)
	if err != nil {
		dto.UpstreamErrorResponse(ctx, err)
		return
	}

	s.log.Info().Str("attendee_id", id).Str("status", req.RSVPStatus).Msg("rsvp submitted")
	dto.SuccessResponse(ctx, nil)
}

func (s *service) SubmitGroupRSVP(ctx *ginext.Context) {
	groupID := ctx.Param("groupId")

	var req dto.GroupRSVPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		s.invalid(ctx, "group rsvp form", verr)
		return
	}

	responses := make([]apiclient.GroupRSVPResponse, 0, len(req.Responses))
	for _, r := range req.Responses {
		responses = append(responses, apiclient.GroupRSVPResponse{
			AttendeeID:          r.AttendeeID,
			RSVPStatus:          apiclient.RSVPStatus(r.RSVPStatus),
			DietaryRequirements: apiclient.DietaryRequirement(r.DietaryRequirements),
		})
	}

	if err := s.public.SubmitGroupRSVP(ctx.Request.Context(), groupID, responses); err != nil {
		dto.UpstreamErrorResponse(ctx, err)
		return
	}

	s.log.Info().Str("group_id", groupID).Int("responses", len(responses)).Msg("group rsvp submitted")
	dto.SuccessResponse(ctx, nil)
}

func (s *service) GetGroup(ctx *ginext.Context) {
	group, err := s.public.GetGroup(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		dto.UpstreamErrorResponse(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, group)
}

func (s *service) ListAttendees(ctx *ginext.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		dto.FieldIncorrectError(ctx, "page")
		return
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		dto.FieldIncorrectError(ctx, "limit")
		return
	}

	result, err := s.adminFor(ctx).GetAttendees(ctx.Request.Context(), page, limit)
	if err != nil {
		dto.UpstreamErrorResponse(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, result)
}

func (s *service) CreateAttendee(ctx *ginext.Context) {
	var req dto.CreateAttendeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		s.invalid(ctx, "attendee form", verr)
		return
	}

	attendee, err := s.adminFor(ctx).CreateAttendee(ctx.Request.Context(), apiclient.CreateAttendeeRequest{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		DietaryRequirements: apiclient.DietaryRequirement(req.DietaryRequirements),
		GroupID:             req.GroupID,
	})
	if err != nil {
		dto.UpstreamErrorResponse(ctx, err)
		return
	}

	s.log.Info().Str("attendee_id", attendee.ID).Msg("attendee created")
	dto.SuccessCreatedResponse(ctx, attendee)
}

func (s *service) GetAttendee(ctx *ginext.Context) {
	attendee, err := s.adminFor(ctx).GetAttendee(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		dto.UpstreamErrorResponse(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, attendee)
}

func (s *service) UpdateAttendee(ctx *ginext.Context) {
	id := ctx.Param("id")

	var req dto.UpdateAttendeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		s.invalid(ctx, "attendee form", verr)
		return
	}

	attendee, err := s.adminFor(ctx).UpdateAttendee(ctx.Request.Context(), id, apiclient.UpdateAttendeeRequest{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		DietaryRequirements: apiclient.DietaryRequirement(req.DietaryRequirements),
		GroupID:             req.GroupID,
	})
	if err != nil {
		dto.UpstreamErrorResponse(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, attendee)
}

func (s *service) DeleteAttendee(ctx *ginext.Context) {
	id := ctx.Param("id")
	if err := s.adminFor(ctx).DeleteAttendee(ctx.Request.Context(), id); err != nil {
		dto.UpstreamErrorResponse(ctx, err)
		return
	}
	s.log.Info().Str("attendee_id", id).Msg("attendee deleted")
	dto.SuccessResponse(ctx, nil)
}

func (s *service) BulkUpload(ctx *ginext.Context) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, dto.UploadFileMissing)
		return
	}
	if err := dto.CheckUploadFile(fh.Filename, fh.Size); err != nil {
		s.invalid(ctx, "bulk upload", err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to open uploaded file")
		dto.InternalServerError(ctx)
		return
	}
	defer f.Close()

	result, err := s.adminFor(ctx).BulkUploadAttendees(ctx.Request.Context(), fh.Filename, f)
	if err != nil {
		dto.UpstreamErrorResponse(ctx, err)
		return
	}

	s.log.Info().
		Int("total", result.TotalRecords).
		Int("created", result.SuccessfulCreations).
		Int("duplicates", result.Duplicates).
		Int("failures", result.Failures).
		Msg("bulk upload processed")
	dto.SuccessResponse(ctx, result)
}

func (s *service) CreateGroup(ctx *ginext.Context) {
	var req dto.CreateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		s.invalid(ctx, "group form", verr)
		return
	}

	group, err := s.adminFor(ctx).CreateGroup(ctx.Request.Context(), apiclient.CreateGroupRequest{
		Name:      req.Name,
		MemberIDs: req.MemberIDs,
	})
	if err != nil {
		dto.UpstreamErrorResponse(ctx, err)
		return
	}

	s.log.Info().Str("group_id", group.ID).Msg("group created")
	dto.SuccessCreatedResponse(ctx, group)
}

func (s *service) ListGroups(ctx *ginext.Context) {
	groups, err := s.adminFor(ctx).GetAllGroups(ctx.Request.Context())
	if err != nil {
		dto.UpstreamErrorResponse(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, groups)
}

func (s *service) GetGroupAdmin(ctx *ginext.Context) {
	group, err := s.adminFor(ctx).GetGroup(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		dto.UpstreamErrorResponse(ctx, err)
		return
	}
	dto.SuccessResponse(ctx, group)
}

func (s *service) DeleteGroup(ctx *ginext.Context) {
	id := ctx.Param("id")
	if err := s.adminFor(ctx).DeleteGroup(ctx.Request.Context(), id); err != nil {
		dto.UpstreamErrorResponse(ctx, err)
		return
	}
	s.log.Info().Str("group_id", id).Msg("group deleted")
	dto.SuccessResponse(ctx, nil)
}

func (s *service) UpdateGroupMembers(ctx *ginext.Context) {
	id := ctx.Param("id")

	var req dto.UpdateGroupMembersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		s.invalid(ctx, "group members form", verr)
		return
	}

	err := s.adminFor(ctx).UpdateGroupMembers(
		ctx.Request.Context(),
		id,
		apiclient.MemberAction(req.Action),
		req.AttendeeIDs,
	)
	if err != nil {
		dto.UpstreamErrorResponse(ctx, err)
		return
	}

	s.log.Info().
		Str("group_id", id).
		Str("action", req.Action).
		Int("attendees", len(req.AttendeeIDs)).
		Msg("group members updated")
	dto.SuccessResponse(ctx, nil)
}

func (s *service) RecentReports(ctx *ginext.Context) {
	if s.sink == nil {
		dto.SuccessResponse(ctx, []report.Report{})
		return
	}
	dto.SuccessResponse(ctx, s.sink.Recent())
}

func (s *service) ClearReports(ctx *ginext.Context) {
	if s.sink != nil {
		s.sink.Clear()
	}
	dto.SuccessResponse(ctx, nil)
}
