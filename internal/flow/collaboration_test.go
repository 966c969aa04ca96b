package flow

import (
	"context"
	"testing"

	"github.com/muaishaq001/nacos-hub/internal/clients/hubapi"
	"github.com/muaishaq001/nacos-hub/internal/dto"
	"github.com/muaishaq001/nacos-hub/internal/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCollaboratorAPI struct {
	res       hubapi.ApiResult[dto.CollaboratorRecord]
	submitted []dto.CollaboratorApplication
}

func (f *fakeCollaboratorAPI) Submit(ctx context.Context, data dto.CollaboratorApplication) hubapi.ApiResult[dto.CollaboratorRecord] {
	f.submitted = append(f.submitted, data)
	return f.res
}

func validApplication() dto.CollaboratorApplication {
	return dto.CollaboratorApplication{
		CompanyName:       "Andela Nigeria",
		ContactPerson:     "Jane Doe",
		Email:             "jane@andela.com",
		CollaborationType: dto.CollaborationTech,
	}
}

func TestCollaboration_Success(t *testing.T) {
	api := &fakeCollaboratorAPI{res: okResult(dto.CollaboratorRecord{ID: "c-9", Status: "pending"})}
	buf := &NoticeBuffer{}
	c := NewCollaboration(api, buf, helper.NewValidator(), nil)

	rec, err := c.Submit(context.Background(), validApplication())

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "c-9", rec.ID)
	assert.Equal(t, dto.CollaboratorApplication{}, c.Form(), "form resets on success")
	assert.Equal(t, []dto.CollaboratorApplication{validApplication()}, api.submitted)
	assert.Equal(t, []Notice{success("Application submitted!", "Our NACOS admin team will review your application and contact you soon.")}, buf.Drain())
}

func TestCollaboration_ServerFailureKeepsForm(t *testing.T) {
	api := &fakeCollaboratorAPI{res: failResult[dto.CollaboratorRecord]("Company already applied")}
	buf := &NoticeBuffer{}
	c := NewCollaboration(api, buf, nil, nil)

	rec, err := c.Submit(context.Background(), validApplication())

	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, validApplication(), c.Form())
	assert.Equal(t, []Notice{failure("Submission failed", "Company already applied")}, buf.Drain())
}

func TestCollaboration_ValidationBeforeNetwork(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *dto.CollaboratorApplication)
		field  string
		msg    string
	}{
		{"type outside the enumeration", func(a *dto.CollaboratorApplication) { a.CollaborationType = "Finance" }, "collaborationType", "Please select a collaboration type"},
		{"lower case type", func(a *dto.CollaboratorApplication) { a.CollaborationType = "tech" }, "collaborationType", "Please select a collaboration type"},
		{"missing type", func(a *dto.CollaboratorApplication) { a.CollaborationType = "" }, "collaborationType", "Please select a collaboration type"},
		{"short company", func(a *dto.CollaboratorApplication) { a.CompanyName = "A" }, "companyName", "Company name must be at least 2 characters"},
		{"short contact", func(a *dto.CollaboratorApplication) { a.ContactPerson = "J" }, "contactPerson", "Contact person name must be at least 2 characters"},
		{"bad email", func(a *dto.CollaboratorApplication) { a.Email = "jane@" }, "email", "Please enter a valid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeCollaboratorAPI{}
			buf := &NoticeBuffer{}
			c := NewCollaboration(api, buf, helper.NewValidator(), nil)
			in := validApplication()
			tt.mutate(&in)

			rec, err := c.Submit(context.Background(), in)

			assert.Nil(t, rec)
			var fields helper.ValidationErrors
			require.ErrorAs(t, err, &fields)
			assert.Equal(t, tt.msg, fields[tt.field])
			assert.Empty(t, api.submitted)
			assert.Empty(t, buf.Drain())
		})
	}
}

func TestCollaboration_AllTypesAccepted(t *testing.T) {
	for _, typ := range dto.CollaborationTypes {
		api := &fakeCollaboratorAPI{res: okResult(dto.CollaboratorRecord{Category: typ})}
		c := NewCollaboration(api, &NoticeBuffer{}, nil, nil)
		in := validApplication()
		in.CollaborationType = typ

		rec, err := c.Submit(context.Background(), in)
		require.NoError(t, err, typ)
		assert.Equal(t, typ, rec.Category)
	}
}
