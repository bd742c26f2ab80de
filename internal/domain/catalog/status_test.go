package catalog

import (
	"testing"

	"github.com/corey/roost/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_SingleApp(t *testing.T) {
	st := Status(ports.App{Name: "blog", Aliases: []string{"b"}, Port: 4000, Description: "Jekyll"}, "test")
	assert.Equal(t, ports.AppTypeSingle, st.Type)
	assert.Equal(t, "http://blog.test", st.URL)
	assert.Equal(t, []string{"b"}, st.Aliases)
	assert.Equal(t, 4000, st.Port)
	assert.Empty(t, st.Services)
}

func TestStatus_MultiService(t *testing.T) {
	app := ports.App{Name: "shop", Services: []ports.Service{
		{Name: "web", Port: 3000, Default: true},
		{Name: "api", Port: 3001},
	}}
	st := Status(app, "local")
	assert.Equal(t, ports.AppTypeMulti, st.Type)
	assert.Equal(t, "http://shop.local", st.URL)
	require.Len(t, st.Services, 2)
	assert.Equal(t, "http://web.shop.local", st.Services[0].URL)
	assert.True(t, st.Services[0].Default)
	assert.Equal(t, 3001, st.Services[1].Port)
}

func TestStatuses_PreservesOrder(t *testing.T) {
	out := Statuses(testApps(), "test")
	require.Len(t, out, 4)
	assert.Equal(t, "android-assistant", out[0].Name)
	assert.Equal(t, "shop", out[3].Name)
}
