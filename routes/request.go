package routes

import (
	"bytes"
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
	"video-metadata-api/models"

	"github.com/gofiber/fiber/v2"
)

// Textos de ayuda por campo, se devuelven cuando el campo falta o no se puede convertir
var fieldHelp = map[string]string{
	"name":  "Name of the video is required",
	"views": "Views of the video",
	"likes": "Likes of the video",
}

var videoFields = []string{"name", "views", "likes"}

// ValidationError se devuelve antes de tocar la base de datos cuando falta un
// campo obligatorio o alguno no tiene el tipo esperado.
type ValidationError struct {
	Message string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for _, f := range videoFields {
		if _, ok := e.Fields[f]; ok {
			names = append(names, f)
		}
	}
	return e.Message + ": " + strings.Join(names, ", ")
}

func (e *ValidationError) add(field string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = fieldHelp[field]
}

// videoArgs son los argumentos ya convertidos; nil indica que el campo no vino
type videoArgs struct {
	Name  *string
	Views *int64
	Likes *int64
}

// parsePutArgs exige los tres campos
func parsePutArgs(c *fiber.Ctx) (models.Video, error) {
	args, err := parseVideoArgs(c)
	if err != nil {
		return models.Video{}, err
	}

	missing := &ValidationError{Message: "missing required fields"}
	if args.Name == nil {
		missing.add("name")
	}
	if args.Views == nil {
		missing.add("views")
	}
	if args.Likes == nil {
		missing.add("likes")
	}
	if len(missing.Fields) > 0 {
		return models.Video{}, missing
	}

	return models.Video{Name: *args.Name, Views: *args.Views, Likes: *args.Likes}, nil
}

// parsePatchArgs acepta cualquier subconjunto de campos
func parsePatchArgs(c *fiber.Ctx) (models.VideoPatch, error) {
	args, err := parseVideoArgs(c)
	if err != nil {
		return models.VideoPatch{}, err
	}
	return models.VideoPatch{Name: args.Name, Views: args.Views, Likes: args.Likes}, nil
}

// parseVideoArgs lee los argumentos del cuerpo JSON. Los campos que no vienen
// en el JSON (o todos, si la petición no es JSON) se buscan en el formulario y
// después en la query string.
func parseVideoArgs(c *fiber.Ctx) (videoArgs, error) {
	var args videoArgs
	if c.Is("json") {
		var err error
		if args, err = parseJSONArgs(c.Body()); err != nil {
			return videoArgs{}, err
		}
	}
	return parseValueArgs(c, args)
}

func parseJSONArgs(body []byte) (videoArgs, error) {
	var args videoArgs
	if len(bytes.TrimSpace(body)) == 0 {
		return args, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return args, &ValidationError{Message: "malformed request body"}
	}

	verr := &ValidationError{Message: "invalid fields"}
	if v, ok := present(raw, "name"); ok {
		if name, ok := jsonString(v); ok {
			args.Name = &name
		} else {
			verr.add("name")
		}
	}
	if v, ok := present(raw, "views"); ok {
		if n, ok := jsonInt(v); ok {
			args.Views = &n
		} else {
			verr.add("views")
		}
	}
	if v, ok := present(raw, "likes"); ok {
		if n, ok := jsonInt(v); ok {
			args.Likes = &n
		} else {
			verr.add("likes")
		}
	}

	if len(verr.Fields) > 0 {
		return videoArgs{}, verr
	}
	return args, nil
}

// present trata null igual que un campo ausente
func present(raw map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	v, ok := raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	return v, true
}

func decodeValue(v json.RawMessage) (interface{}, bool) {
	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()

	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return nil, false
	}
	return value, true
}

// jsonString acepta strings y números; un número se guarda tal como viene escrito
func jsonString(v json.RawMessage) (string, bool) {
	value, ok := decodeValue(v)
	if !ok {
		return "", false
	}
	switch t := value.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}

// jsonInt acepta enteros, números sin parte decimal y strings con un entero en
// base 10. Los valores fuera de int64 se rechazan.
func jsonInt(v json.RawMessage) (int64, bool) {
	value, ok := decodeValue(v)
	if !ok {
		return 0, false
	}

	switch t := value.(type) {
	case json.Number:
		return numberToInt(t)
	case string:
		return parseInt(t)
	default:
		return 0, false
	}
}

func numberToInt(n json.Number) (int64, bool) {
	if i, err := n.Int64(); err == nil {
		return i, true
	}
	// Descarta exponentes enormes antes de la conversión exacta
	f, err := n.Float64()
	if err != nil || math.Abs(f) > 1e19 {
		return 0, false
	}
	r, ok := new(big.Rat).SetString(n.String())
	if !ok || !r.IsInt() || !r.Num().IsInt64() {
		return 0, false
	}
	return r.Num().Int64(), true
}

func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseValueArgs completa los campos que faltan en args con el formulario o la query string
func parseValueArgs(c *fiber.Ctx, args videoArgs) (videoArgs, error) {
	verr := &ValidationError{Message: "invalid fields"}

	if args.Name == nil {
		if v, ok := formOrQuery(c, "name"); ok {
			args.Name = &v
		}
	}
	if args.Views == nil {
		if v, ok := formOrQuery(c, "views"); ok {
			if n, ok := parseInt(v); ok {
				args.Views = &n
			} else {
				verr.add("views")
			}
		}
	}
	if args.Likes == nil {
		if v, ok := formOrQuery(c, "likes"); ok {
			if n, ok := parseInt(v); ok {
				args.Likes = &n
			} else {
				verr.add("likes")
			}
		}
	}

	if len(verr.Fields) > 0 {
		return videoArgs{}, verr
	}
	return args, nil
}

func formOrQuery(c *fiber.Ctx, key string) (string, bool) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if form, err := c.MultipartForm(); err == nil {
			if values := form.Value[key]; len(values) > 0 {
				return values[0], true
			}
		}
	}
	if post := c.Request().PostArgs(); post.Has(key) {
		return string(post.Peek(key)), true
	}
	if query := c.Context().QueryArgs(); query.Has(key) {
		return string(query.Peek(key)), true
	}
	return "", false
}
