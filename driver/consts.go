package driver

// Enum codes shared by every Driver implementation. Values follow the
// OpenGL registry; the set is limited to what glguard passes through.
const (
	FALSE = 0
	TRUE  = 1

	NO_ERROR                      = 0x0000
	INVALID_ENUM                  = 0x0500
	INVALID_VALUE                 = 0x0501
	INVALID_OPERATION             = 0x0502
	STACK_OVERFLOW                = 0x0503
	STACK_UNDERFLOW               = 0x0504
	OUT_OF_MEMORY                 = 0x0505
	INVALID_FRAMEBUFFER_OPERATION = 0x0506
	CONTEXT_LOST                  = 0x0507

	ARRAY_BUFFER              = 0x8892
	ATOMIC_COUNTER_BUFFER     = 0x92C0
	COPY_READ_BUFFER          = 0x8F36
	COPY_WRITE_BUFFER         = 0x8F37
	DISPATCH_INDIRECT_BUFFER  = 0x90EE
	DRAW_INDIRECT_BUFFER      = 0x8F3F
	ELEMENT_ARRAY_BUFFER      = 0x8893
	PIXEL_PACK_BUFFER         = 0x88EB
	PIXEL_UNPACK_BUFFER       = 0x88EC
	QUERY_BUFFER              = 0x9192
	SHADER_STORAGE_BUFFER     = 0x90D2
	TEXTURE_BUFFER            = 0x8C2A
	TRANSFORM_FEEDBACK_BUFFER = 0x8C8E
	UNIFORM_BUFFER            = 0x8A11

	ARRAY_BUFFER_BINDING              = 0x8894
	ATOMIC_COUNTER_BUFFER_BINDING     = 0x92C1
	COPY_READ_BUFFER_BINDING          = 0x8F36
	COPY_WRITE_BUFFER_BINDING         = 0x8F37
	DISPATCH_INDIRECT_BUFFER_BINDING  = 0x90EF
	DRAW_INDIRECT_BUFFER_BINDING      = 0x8F43
	ELEMENT_ARRAY_BUFFER_BINDING      = 0x8895
	PIXEL_PACK_BUFFER_BINDING         = 0x88ED
	PIXEL_UNPACK_BUFFER_BINDING       = 0x88EF
	QUERY_BUFFER_BINDING              = 0x9193
	SHADER_STORAGE_BUFFER_BINDING     = 0x90D3
	TEXTURE_BUFFER_BINDING            = 0x8C2A
	TRANSFORM_FEEDBACK_BUFFER_BINDING = 0x8C8F
	UNIFORM_BUFFER_BINDING            = 0x8A28
	VERTEX_ARRAY_BINDING              = 0x85B5
	CURRENT_PROGRAM                   = 0x8B8D
	MAX_VERTEX_ATTRIBS                = 0x8869

	STREAM_DRAW  = 0x88E0
	STREAM_READ  = 0x88E1
	STREAM_COPY  = 0x88E2
	STATIC_DRAW  = 0x88E4
	STATIC_READ  = 0x88E5
	STATIC_COPY  = 0x88E6
	DYNAMIC_DRAW = 0x88E8
	DYNAMIC_READ = 0x88E9
	DYNAMIC_COPY = 0x88EA

	BYTE           = 0x1400
	UNSIGNED_BYTE  = 0x1401
	SHORT          = 0x1402
	UNSIGNED_SHORT = 0x1403
	INT            = 0x1404
	UNSIGNED_INT   = 0x1405
	FLOAT          = 0x1406
	DOUBLE         = 0x140A

	FRAGMENT_SHADER        = 0x8B30
	VERTEX_SHADER          = 0x8B31
	GEOMETRY_SHADER        = 0x8DD9
	TESS_EVALUATION_SHADER = 0x8E87
	TESS_CONTROL_SHADER    = 0x8E88
	COMPUTE_SHADER         = 0x91B9

	SHADER_TYPE                 = 0x8B4F
	DELETE_STATUS               = 0x8B80
	COMPILE_STATUS              = 0x8B81
	LINK_STATUS                 = 0x8B82
	VALIDATE_STATUS             = 0x8B83
	INFO_LOG_LENGTH             = 0x8B84
	ATTACHED_SHADERS            = 0x8B85
	ACTIVE_UNIFORMS             = 0x8B86
	ACTIVE_UNIFORM_MAX_LENGTH   = 0x8B87
	SHADER_SOURCE_LENGTH        = 0x8B88
	ACTIVE_ATTRIBUTES           = 0x8B89
	ACTIVE_ATTRIBUTE_MAX_LENGTH = 0x8B8A

	DEPTH_BUFFER_BIT   = 0x00000100
	STENCIL_BUFFER_BIT = 0x00000400
	COLOR_BUFFER_BIT   = 0x00004000

	POINTS                   = 0x0000
	LINES                    = 0x0001
	LINE_LOOP                = 0x0002
	LINE_STRIP               = 0x0003
	TRIANGLES                = 0x0004
	TRIANGLE_STRIP           = 0x0005
	TRIANGLE_FAN             = 0x0006
	LINES_ADJACENCY          = 0x000A
	LINE_STRIP_ADJACENCY     = 0x000B
	TRIANGLES_ADJACENCY      = 0x000C
	TRIANGLE_STRIP_ADJACENCY = 0x000D
	PATCHES                  = 0x000E
)
