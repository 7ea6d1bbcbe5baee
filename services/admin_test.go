package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bar-website/models"
)

type adminFixture struct {
	svc    *AdminService
	menu   *fakeMenuStore
	images *fakeImages
	msgs   *fakeMessageStore
	calls  *callLog
}

func newAdminFixture() *adminFixture {
	calls := &callLog{}
	f := &adminFixture{
		menu:   newFakeMenuStore(calls),
		images: newFakeImages(calls),
		msgs:   &fakeMessageStore{},
		calls:  calls,
	}
	f.svc = NewAdminService(f.menu, f.msgs, f.images, zap.NewNop())
	f.svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func beerForm() models.MenuItemForm {
	return models.MenuItemForm{Name: "Efes Pilsen", Description: "50cl", Price: "12.50", Category: "Fıçı Bira"}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"12.50", 12.5, false},
		{"12,50", 12.5, false},
		{" 0 ", 0, false},
		{"120", 120, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-1", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePrice(tt.raw)
		if tt.wantErr {
			assert.True(t, IsValidation(err), "ParsePrice(%q) err = %v", tt.raw, err)
			continue
		}
		require.NoError(t, err, "ParsePrice(%q)", tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestSaveMenuItem_CreateAndRead(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()

	saved, err := f.svc.SaveMenuItem(ctx, "", beerForm())
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := f.svc.GetMenuItem(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Efes Pilsen", got.Name)
	assert.Equal(t, 12.5, got.Price)
	assert.Equal(t, "Fıçı Bira", got.Category)
	assert.Empty(t, got.Image)
}

func TestSaveMenuItem_InvalidPriceWritesNothing(t *testing.T) {
	f := newAdminFixture()
	form := beerForm()
	form.Price = "on iki"
	form.Image = &models.Upload{Filename: "efes.jpg", ContentType: "image/jpeg", Data: []byte("jpg")}

	_, err := f.svc.SaveMenuItem(context.Background(), "", form)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, f.calls.list(), "no upload and no record write")
}

func TestSaveMenuItem_RequiredFields(t *testing.T) {
	f := newAdminFixture()
	for _, form := range []models.MenuItemForm{
		{Name: " ", Price: "1", Category: "Shot"},
		{Name: "Tekila", Price: "1", Category: ""},
	} {
		_, err := f.svc.SaveMenuItem(context.Background(), "", form)
		assert.True(t, IsValidation(err))
	}
	assert.Empty(t, f.calls.list())
}

func TestSaveMenuItem_UploadsImage(t *testing.T) {
	f := newAdminFixture()
	form := beerForm()
	form.Image = &models.Upload{Filename: "../efes pilsen.jpg", ContentType: "image/jpeg", Data: []byte("jpg")}

	saved, err := f.svc.SaveMenuItem(context.Background(), "", form)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(saved.Image, "/uploads/menu-images/"), saved.Image)
	assert.True(t, strings.HasSuffix(saved.Image, "-efes_pilsen.jpg"), saved.Image)
	assert.NotContains(t, saved.Image, "..")
	assert.Contains(t, f.images.files, saved.Image)
	assert.Equal(t, []string{"put image", "create Efes Pilsen"}, f.calls.list())
}

func TestSaveMenuItem_FailedWriteRemovesUpload(t *testing.T) {
	f := newAdminFixture()
	f.menu.saveErr = errBoom
	form := beerForm()
	form.Image = &models.Upload{Filename: "efes.jpg", ContentType: "image/jpeg", Data: []byte("jpg")}

	_, err := f.svc.SaveMenuItem(context.Background(), "", form)
	require.ErrorIs(t, err, errBoom)
	assert.Empty(t, f.images.files)
	calls := f.calls.list()
	require.Len(t, calls, 3)
	assert.True(t, strings.HasPrefix(calls[2], "delete image /uploads/menu-images/"))
}

func TestSaveMenuItem_UpdateReplacesImage(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()
	form := beerForm()
	form.Image = &models.Upload{Filename: "old.jpg", ContentType: "image/jpeg", Data: []byte("old")}
	first, err := f.svc.SaveMenuItem(ctx, "", form)
	require.NoError(t, err)

	form = beerForm()
	form.Price = "15"
	form.ImageURL = first.Image
	form.Image = &models.Upload{Filename: "new.jpg", ContentType: "image/jpeg", Data: []byte("new")}
	second, err := f.svc.SaveMenuItem(ctx, first.ID, form)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.Image, second.Image)
	assert.NotContains(t, f.images.files, first.Image)
	assert.Contains(t, f.images.files, second.Image)

	got, err := f.svc.GetMenuItem(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 15.0, got.Price)
	assert.Equal(t, second.Image, got.Image)
}

func TestSaveMenuItem_UpdateKeepsImageWithoutUpload(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()
	f.menu.items["item-0"] = models.MenuItem{ID: "item-0", Name: "Tekila", Category: "Shot", Image: "/uploads/menu-images/t.jpg"}
	f.menu.next = 1

	form := models.MenuItemForm{Name: "Tekila Gold", Price: "20", Category: "Shot", ImageURL: "/uploads/menu-images/t.jpg"}
	_, err := f.svc.SaveMenuItem(ctx, "item-0", form)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/menu-images/t.jpg", f.menu.items["item-0"].Image)
	for _, c := range f.calls.list() {
		assert.NotContains(t, c, "image")
	}
}

func TestSaveMenuItem_UpdateWithoutImageURLKeepsStoredImage(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()
	form := beerForm()
	form.Image = &models.Upload{Filename: "efes.jpg", ContentType: "image/jpeg", Data: []byte("jpg")}
	first, err := f.svc.SaveMenuItem(ctx, "", form)
	require.NoError(t, err)

	_, err = f.svc.SaveMenuItem(ctx, first.ID, models.MenuItemForm{Name: "Efes Pilsen", Price: "14", Category: "Fıçı Bira"})
	require.NoError(t, err)

	got, err := f.svc.GetMenuItem(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Image, got.Image)
	assert.Contains(t, f.images.files, first.Image)
}

func TestSaveMenuItem_ReplaceIgnoresForeignImageURL(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()
	upload := func(name string) *models.Upload {
		return &models.Upload{Filename: name, ContentType: "image/jpeg", Data: []byte(name)}
	}
	formA := beerForm()
	formA.Image = upload("a.jpg")
	a, err := f.svc.SaveMenuItem(ctx, "", formA)
	require.NoError(t, err)
	formB := models.MenuItemForm{Name: "Tekila", Price: "150", Category: "Shot", Image: upload("b.jpg")}
	b, err := f.svc.SaveMenuItem(ctx, "", formB)
	require.NoError(t, err)

	formB.Image = upload("b2.jpg")
	formB.ImageURL = a.Image
	updated, err := f.svc.SaveMenuItem(ctx, b.ID, formB)
	require.NoError(t, err)

	assert.Contains(t, f.images.files, a.Image, "other item's image untouched")
	assert.NotContains(t, f.images.files, b.Image, "own previous image replaced")
	assert.Contains(t, f.images.files, updated.Image)
	gotA, err := f.svc.GetMenuItem(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Image, gotA.Image)
}

func TestSaveMenuItem_UpdateMissing(t *testing.T) {
	f := newAdminFixture()
	_, err := f.svc.SaveMenuItem(context.Background(), "nope", beerForm())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMenuItem_ImageThenRecord(t *testing.T) {
	f := newAdminFixture()
	f.menu.items["item-0"] = models.MenuItem{ID: "item-0", Name: "Efes", Category: "Fıçı Bira", Image: "/uploads/menu-images/efes.jpg"}
	f.menu.next = 1

	require.NoError(t, f.svc.DeleteMenuItem(context.Background(), "item-0", true))
	assert.Equal(t, []string{
		"get item-0",
		"delete image /uploads/menu-images/efes.jpg",
		"delete record item-0",
	}, f.calls.list())
	assert.Empty(t, f.menu.items)
}

func TestDeleteMenuItem_ImageFailureContinues(t *testing.T) {
	f := newAdminFixture()
	f.images.deleteErr = errBoom
	f.menu.items["item-0"] = models.MenuItem{ID: "item-0", Name: "Efes", Category: "Fıçı Bira", Image: "/uploads/menu-images/efes.jpg"}
	f.menu.next = 1

	require.NoError(t, f.svc.DeleteMenuItem(context.Background(), "item-0", true))
	assert.Empty(t, f.menu.items)
}

func TestDeleteMenuItem_NoImage(t *testing.T) {
	f := newAdminFixture()
	f.menu.items["item-0"] = models.MenuItem{ID: "item-0", Name: "Efes", Category: "Fıçı Bira"}
	f.menu.next = 1

	require.NoError(t, f.svc.DeleteMenuItem(context.Background(), "item-0", true))
	assert.Equal(t, []string{"get item-0", "delete record item-0"}, f.calls.list())
}

func TestDeleteMenuItem_RequiresConfirmation(t *testing.T) {
	f := newAdminFixture()
	f.menu.items["item-0"] = models.MenuItem{ID: "item-0", Name: "Efes"}

	err := f.svc.DeleteMenuItem(context.Background(), "item-0", false)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Empty(t, f.calls.list())
	assert.Len(t, f.menu.items, 1)
}

func TestDeleteMenuItem_Missing(t *testing.T) {
	f := newAdminFixture()
	err := f.svc.DeleteMenuItem(context.Background(), "nope", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMessage(t *testing.T) {
	f := newAdminFixture()
	f.msgs.msgs = []models.ContactMessage{{ID: "m1"}, {ID: "m2"}}

	assert.ErrorIs(t, f.svc.DeleteMessage(context.Background(), "m1", false), ErrNotConfirmed)
	require.NoError(t, f.svc.DeleteMessage(context.Background(), "m1", true))
	assert.Equal(t, []string{"m1"}, f.msgs.deleted)
	assert.ErrorIs(t, f.svc.DeleteMessage(context.Background(), "m1", true), ErrNotFound)
}

func TestListMenu_FilterAndSort(t *testing.T) {
	f := newAdminFixture()
	ctx := context.Background()
	for _, form := range []models.MenuItemForm{
		{Name: "Tekila", Price: "150", Category: "Shot"},
		{Name: "Efes", Price: "90", Category: "Fıçı Bira"},
		{Name: "Jäger", Price: "170", Category: "Shot"},
		{Name: "Çerez", Price: "60", Category: "Atıştırmalık"},
	} {
		_, err := f.svc.SaveMenuItem(ctx, "", form)
		require.NoError(t, err)
	}

	list, err := f.svc.ListMenu(ctx, AdminListOptions{})
	require.NoError(t, err)
	assert.Equal(t, SortByName, list.SortBy)
	assert.Equal(t, []string{"Çerez", "Efes", "Jäger", "Tekila"}, names(list.Items))
	assert.ElementsMatch(t, []string{"Shot", "Fıçı Bira", "Atıştırmalık"}, list.Categories)

	list, err = f.svc.ListMenu(ctx, AdminListOptions{Category: "Shot", SortBy: SortByPrice})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tekila", "Jäger"}, names(list.Items))
	assert.Len(t, list.Categories, 3, "categories are computed before filtering")

	list, err = f.svc.ListMenu(ctx, AdminListOptions{Category: "all", SortBy: SortByCategory})
	require.NoError(t, err)
	require.Len(t, list.Items, 4)
	assert.Equal(t, "Atıştırmalık", list.Items[0].Category)
	assert.Equal(t, "Shot", list.Items[3].Category)
}

func TestListMenu_StoreError(t *testing.T) {
	f := newAdminFixture()
	f.menu.listErr = errBoom
	list, err := f.svc.ListMenu(context.Background(), AdminListOptions{})
	assert.ErrorIs(t, err, errBoom)
	assert.NotNil(t, list.Items)
	assert.Empty(t, list.Items)
}

func TestSortAdminItems_UnknownKeyKeepsOrder(t *testing.T) {
	items := []models.MenuItem{item("b", "x"), item("a", "x")}
	got := SortAdminItems(items, "colour")
	assert.Equal(t, []string{"b", "a"}, names(got))
	assert.Equal(t, []string{"b", "a"}, names(items), "input is not modified")
}

func TestImageKey(t *testing.T) {
	now := time.UnixMilli(1717243200000)
	a := imageKey(now, "C:\\fotos\\bira.png")
	b := imageKey(now, "bira.png")
	assert.True(t, strings.HasPrefix(a, "menu-images/1717243200000-"), a)
	assert.True(t, strings.HasSuffix(a, "-bira.png"), a)
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(imageKey(now, ""), "-image"))
}
