package preview

// ClientScript is appended to the served document. It forwards native
// events on handler-bearing elements to /ws and swaps in the body
// snapshots it receives.
const ClientScript = `
<script>
(function() {
    'use strict';

    var events = ['click', 'dblclick', 'mouseover', 'mouseout', 'input', 'change', 'submit', 'keydown', 'keyup'];
    var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
    var ws = new WebSocket(protocol + '//' + location.host + '/ws');

    ws.onmessage = function(e) {
        var msg;
        try {
            msg = JSON.parse(e.data);
        } catch (err) {
            return;
        }
        if (msg.type === 'snapshot') {
            document.body.innerHTML = msg.html;
        } else if (msg.type === 'error') {
            console.error('[snapp]', msg.error);
        }
    };

    events.forEach(function(type) {
        document.addEventListener(type, function(e) {
            var el = e.target.closest && e.target.closest('[snapp-data]');
            if (!el || ws.readyState !== WebSocket.OPEN) {
                return;
            }
            if (type === 'submit') {
                e.preventDefault();
            }
            ws.send(JSON.stringify({
                type: type,
                selector: '[snapp-data="' + el.getAttribute('snapp-data') + '"]',
                detail: e.target.value
            }));
        }, true);
    });
})();
</script>
`
