package service

import (
	"context"
	"strings"

	"github.com/alumnet/reunion/internal/entity"
	"github.com/alumnet/reunion/internal/repository"
	"github.com/alumnet/reunion/pkg/errcode"
	"github.com/google/uuid"
	"github.com/mbeoliero/kit/log"
)

// ContentService handles the curated site content: teachers, students,
// student groups and the reunion record. Writes are admin or teacher
// gated at the router; reads are public.
type ContentService struct {
	teacherRepo *repository.TeacherRepo
	studentRepo *repository.StudentRepo
	groupRepo   *repository.StudentGroupRepo
	reunionRepo *repository.ReunionRepo
}

// NewContentService creates a new ContentService
func NewContentService(repos *repository.Repositories) *ContentService {
	return &ContentService{
		teacherRepo: repos.Teacher,
		studentRepo: repos.Student,
		groupRepo:   repos.StudentGroup,
		reunionRepo: repos.Reunion,
	}
}

// TeacherRequest represents a teacher create or update
type TeacherRequest struct {
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	Designation *string `json:"designation,omitempty"`
	Description *string `json:"description,omitempty"`
	PhotoUrl    *string `json:"photo_url,omitempty"`
}

// ListTeachers gets every teacher record
func (s *ContentService) ListTeachers(ctx context.Context) ([]*entity.Teacher, error) {
	teachers, err := s.teacherRepo.List(ctx)
	if err != nil {
		log.CtxError(ctx, "list teachers failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return teachers, nil
}

// CreateTeacher creates a teacher record
func (s *ContentService) CreateTeacher(ctx context.Context, creatorId string, req *TeacherRequest) (*entity.Teacher, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errcode.ErrNameRequired
	}

	t := &entity.Teacher{
		Id:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Role:        req.Role,
		Designation: req.Designation,
		Description: req.Description,
		PhotoUrl:    req.PhotoUrl,
		CreatedBy:   &creatorId,
	}
	if err := s.teacherRepo.Create(ctx, t); err != nil {
		log.CtxError(ctx, "create teacher failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return t, nil
}

// UpdateTeacher updates a teacher record
func (s *ContentService) UpdateTeacher(ctx context.Context, id string, req *TeacherRequest) (*entity.Teacher, error) {
	existing, err := s.teacherRepo.GetById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "get teacher failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if existing == nil {
		return nil, errcode.ErrContentNotFound
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, errcode.ErrNameRequired
	}

	updates := map[string]interface{}{
		"name":        strings.TrimSpace(req.Name),
		"role":        req.Role,
		"designation": req.Designation,
		"description": req.Description,
		"photo_url":   req.PhotoUrl,
	}
	if err := s.teacherRepo.Update(ctx, id, updates); err != nil {
		log.CtxError(ctx, "update teacher failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return s.teacherRepo.GetById(ctx, id)
}

// DeleteTeacher removes a teacher record
func (s *ContentService) DeleteTeacher(ctx context.Context, id string) error {
	if err := s.teacherRepo.Delete(ctx, id); err != nil {
		log.CtxError(ctx, "delete teacher failed: %v", err)
		return errcode.ErrInternalServer
	}
	return nil
}

// StudentRequest represents a student create or update
type StudentRequest struct {
	Name     string  `json:"name"`
	Batch    string  `json:"batch"`
	Email    *string `json:"email,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Role     *string `json:"role,omitempty"`
	PhotoUrl *string `json:"photo_url,omitempty"`
}

// ListStudents gets every student record
func (s *ContentService) ListStudents(ctx context.Context) ([]*entity.Student, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		log.CtxError(ctx, "list students failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return students, nil
}

// CreateStudent creates a student record
func (s *ContentService) CreateStudent(ctx context.Context, creatorId string, req *StudentRequest) (*entity.Student, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errcode.ErrNameRequired
	}

	st := &entity.Student{
		Id:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Batch:     req.Batch,
		Email:     req.Email,
		Bio:       req.Bio,
		Role:      req.Role,
		PhotoUrl:  req.PhotoUrl,
		CreatedBy: &creatorId,
	}
	if err := s.studentRepo.Create(ctx, st); err != nil {
		log.CtxError(ctx, "create student failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return st, nil
}

// UpdateStudent updates a student record
func (s *ContentService) UpdateStudent(ctx context.Context, id string, req *StudentRequest) (*entity.Student, error) {
	existing, err := s.studentRepo.GetById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "get student failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if existing == nil {
		return nil, errcode.ErrContentNotFound
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, errcode.ErrNameRequired
	}

	updates := map[string]interface{}{
		"name":      strings.TrimSpace(req.Name),
		"batch":     req.Batch,
		"email":     req.Email,
		"bio":       req.Bio,
		"role":      req.Role,
		"photo_url": req.PhotoUrl,
	}
	if err := s.studentRepo.Update(ctx, id, updates); err != nil {
		log.CtxError(ctx, "update student failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return s.studentRepo.GetById(ctx, id)
}

// DeleteStudent removes a student and its group memberships
func (s *ContentService) DeleteStudent(ctx context.Context, id string) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		log.CtxError(ctx, "delete student failed: %v", err)
		return errcode.ErrInternalServer
	}
	return nil
}

// GroupRequest represents a student group create or update
type GroupRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	PhotoUrl    *string  `json:"photo_url,omitempty"`
	StudentIds  []string `json:"student_ids,omitempty"`
}

// ListGroups gets every group with its member roster, assembled from
// batched queries.
func (s *ContentService) ListGroups(ctx context.Context) ([]*entity.StudentGroupInfo, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		log.CtxError(ctx, "list groups failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if len(groups) == 0 {
		return []*entity.StudentGroupInfo{}, nil
	}

	groupIds := make([]string, 0, len(groups))
	for _, g := range groups {
		groupIds = append(groupIds, g.Id)
	}

	memberIdsByGroup, err := s.groupRepo.GetMemberIdsByGroupIds(ctx, groupIds)
	if err != nil {
		log.CtxError(ctx, "get group members failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	studentIdSet := make(map[string]bool)
	for _, ids := range memberIdsByGroup {
		for _, id := range ids {
			studentIdSet[id] = true
		}
	}
	studentIds := make([]string, 0, len(studentIdSet))
	for id := range studentIdSet {
		studentIds = append(studentIds, id)
	}

	students, err := s.studentRepo.GetByIds(ctx, studentIds)
	if err != nil {
		log.CtxError(ctx, "get students failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	infos := make([]*entity.StudentGroupInfo, 0, len(groups))
	for _, g := range groups {
		info := &entity.StudentGroupInfo{
			StudentGroup: *g,
			Members:      []*entity.Student{},
		}
		for _, sid := range memberIdsByGroup[g.Id] {
			if st, ok := students[sid]; ok {
				info.Members = append(info.Members, st)
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// CreateGroup creates a group with its initial roster
func (s *ContentService) CreateGroup(ctx context.Context, creatorId string, req *GroupRequest) (*entity.StudentGroup, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errcode.ErrNameRequired
	}

	g := &entity.StudentGroup{
		Id:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		PhotoUrl:    req.PhotoUrl,
		CreatedBy:   &creatorId,
	}
	if err := s.groupRepo.Create(ctx, g, req.StudentIds); err != nil {
		log.CtxError(ctx, "create group failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return g, nil
}

// UpdateGroup updates group fields and, when StudentIds is present,
// replaces the roster.
func (s *ContentService) UpdateGroup(ctx context.Context, id string, req *GroupRequest) (*entity.StudentGroup, error) {
	existing, err := s.groupRepo.GetById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "get group failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if existing == nil {
		return nil, errcode.ErrContentNotFound
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, errcode.ErrNameRequired
	}

	updates := map[string]interface{}{
		"name":        strings.TrimSpace(req.Name),
		"description": req.Description,
		"photo_url":   req.PhotoUrl,
	}
	if err := s.groupRepo.Update(ctx, id, updates); err != nil {
		log.CtxError(ctx, "update group failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	if req.StudentIds != nil {
		if err := s.groupRepo.ReplaceMembers(ctx, id, req.StudentIds); err != nil {
			log.CtxError(ctx, "replace group members failed: %v", err)
			return nil, errcode.ErrInternalServer
		}
	}
	return s.groupRepo.GetById(ctx, id)
}

// DeleteGroup removes a group and its roster
func (s *ContentService) DeleteGroup(ctx context.Context, id string) error {
	if err := s.groupRepo.Delete(ctx, id); err != nil {
		log.CtxError(ctx, "delete group failed: %v", err)
		return errcode.ErrInternalServer
	}
	return nil
}

// ReunionRequest represents the reunion record update
type ReunionRequest struct {
	Description      *string `json:"description,omitempty"`
	Venue            *string `json:"venue,omitempty"`
	VenueAddress     *string `json:"venue_address,omitempty"`
	ReunionDate      *int64  `json:"reunion_date,omitempty"`
	CountdownEnabled bool    `json:"countdown_enabled"`
	ContactEmail     *string `json:"contact_email,omitempty"`
	ContactPhone     *string `json:"contact_phone,omitempty"`
}

// GetReunionInfo gets the reunion record, nil data if never written
func (s *ContentService) GetReunionInfo(ctx context.Context) (*entity.ReunionInfo, error) {
	info, err := s.reunionRepo.Get(ctx)
	if err != nil {
		log.CtxError(ctx, "get reunion info failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return info, nil
}

// SaveReunionInfo upserts the singleton reunion record
func (s *ContentService) SaveReunionInfo(ctx context.Context, updaterId string, req *ReunionRequest) (*entity.ReunionInfo, error) {
	existing, err := s.reunionRepo.Get(ctx)
	if err != nil {
		log.CtxError(ctx, "get reunion info failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	info := &entity.ReunionInfo{
		Description:      req.Description,
		Venue:            req.Venue,
		VenueAddress:     req.VenueAddress,
		ReunionDate:      req.ReunionDate,
		CountdownEnabled: req.CountdownEnabled,
		ContactEmail:     req.ContactEmail,
		ContactPhone:     req.ContactPhone,
		UpdatedBy:        &updaterId,
	}
	if existing != nil {
		info.Id = existing.Id
	} else {
		info.Id = uuid.New().String()
	}

	if err := s.reunionRepo.Upsert(ctx, info); err != nil {
		log.CtxError(ctx, "save reunion info failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return info, nil
}
